package auth

import (
	"strings"

	"github.com/contestlet/contestlet/internal/models"
)

// NormalizePhone canonicalizes a raw phone number into the E.164-style key
// used for rate limiting, OTP challenges, and contest entries.
//
// Accepted inputs after stripping separators: a 10-digit US number, an
// 11-digit number with leading 1, or a +-prefixed number with 10-15 digits.
// Normalization is idempotent: normalizing an already-normalized number
// returns it unchanged.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	plus := strings.HasPrefix(trimmed, "+")
	if plus {
		trimmed = trimmed[1:]
	}

	var digits strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '-' || r == '.' || r == ' ' || r == '(' || r == ')':
			// separator, dropped
		default:
			return "", models.ErrInvalidPhoneFormat
		}
	}

	d := digits.String()
	switch {
	case plus && len(d) >= 10 && len(d) <= 15:
		return "+" + d, nil
	case len(d) == 11 && d[0] == '1':
		return "+" + d, nil
	case len(d) == 10:
		return "+1" + d, nil
	default:
		return "", models.ErrInvalidPhoneFormat
	}
}
