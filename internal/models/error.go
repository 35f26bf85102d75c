package models

import (
	"errors"
	"fmt"
)

// ==============================================
// CUSTOM ERROR TYPES
// ==============================================

// MissingFieldError reports a mandatory official-rules field that was
// absent or empty in a contest payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Is makes errors.Is(err, ErrMissingRequiredField) match any MissingFieldError.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// NewMissingFieldError creates a MissingFieldError for the given field
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// ==============================================
// PREDEFINED ERRORS
// ==============================================

// Auth/OTP Errors
var (
	ErrInvalidPhoneFormat = errors.New("invalid phone number format")
	ErrRateLimited        = errors.New("too many OTP requests, please try again later")
	ErrNoPendingChallenge = errors.New("no pending verification code for this phone")
	ErrCodeMismatch       = errors.New("verification code does not match")
	ErrChallengeExhausted = errors.New("maximum verification attempts exceeded")
)

// Contest Errors
var (
	ErrContestNotFound      = errors.New("contest not found")
	ErrContestNotOpen       = errors.New("contest is not open for entries")
	ErrContestNotEnded      = errors.New("contest has not ended yet")
	ErrDuplicateEntry       = errors.New("user has already entered this contest")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrMissingRequiredField = errors.New("missing required official rules field")
)

// Infrastructure Errors
var (
	// ErrUnavailable wraps storage/transport failures. Callers may retry.
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// ==============================================
// ERROR CODES (for API responses)
// ==============================================
const (
	ErrCodeInvalidPhone       = "INVALID_PHONE_FORMAT"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeNoPendingChallenge = "NO_PENDING_CHALLENGE"
	ErrCodeCodeMismatch       = "CODE_MISMATCH"
	ErrCodeExhausted          = "CHALLENGE_EXHAUSTED"

	ErrCodeContestNotOpen     = "CONTEST_NOT_OPEN"
	ErrCodeContestNotEnded    = "CONTEST_NOT_ENDED"
	ErrCodeDuplicateEntry     = "DUPLICATE_ENTRY"
	ErrCodeInvalidCoordinates = "INVALID_COORDINATES"
	ErrCodeMissingField       = "MISSING_REQUIRED_FIELD"

	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeUnavailable      = "UNAVAILABLE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// ==============================================
// HELPER FUNCTIONS
// ==============================================

// Unavailable wraps an internal storage/transport failure so that callers see
// a single retryable condition instead of driver-specific errors.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// IsAuthError checks if error belongs to the OTP verification taxonomy
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoPendingChallenge) ||
		errors.Is(err, ErrCodeMismatch) ||
		errors.Is(err, ErrChallengeExhausted)
}

// IsValidationError checks if error is validation-related
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPhoneFormat) ||
		errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrMissingRequiredField)
}
