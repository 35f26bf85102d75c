package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contestlet/contestlet/internal/models"
	"github.com/contestlet/contestlet/internal/service"
)

// respondError sends an error JSON response
func respondError(c *gin.Context, statusCode int, code string, err error) {
	c.JSON(statusCode, gin.H{
		"error":   code,
		"message": err.Error(),
	})
}

// respondServiceError maps service errors to HTTP status codes and responses
func respondServiceError(c *gin.Context, err error) {
	statusCode, code := mapServiceError(err)
	respondError(c, statusCode, code, err)
}

// mapServiceError maps the error taxonomy to HTTP status codes
func mapServiceError(err error) (int, string) {
	switch {
	// Validation errors (400 Bad Request)
	case errors.Is(err, models.ErrInvalidPhoneFormat):
		return http.StatusBadRequest, models.ErrCodeInvalidPhone
	case errors.Is(err, models.ErrInvalidCoordinates):
		return http.StatusBadRequest, models.ErrCodeInvalidCoordinates
	case errors.Is(err, models.ErrContestNotOpen):
		return http.StatusBadRequest, models.ErrCodeContestNotOpen
	case errors.Is(err, models.ErrContestNotEnded):
		return http.StatusBadRequest, models.ErrCodeContestNotEnded

	// Throttling (429 Too Many Requests)
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests, models.ErrCodeRateLimited

	// Not found (404)
	case errors.Is(err, models.ErrContestNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound

	// Conflicts (409)
	case errors.Is(err, models.ErrDuplicateEntry):
		return http.StatusConflict, models.ErrCodeDuplicateEntry

	// Compliance failures (422 Unprocessable Entity)
	case errors.Is(err, models.ErrMissingRequiredField):
		return http.StatusUnprocessableEntity, models.ErrCodeMissingField
	case errors.Is(err, service.ErrInvalidPrizeValue):
		return http.StatusUnprocessableEntity, models.ErrCodeMissingField

	// Retryable infrastructure failures (503)
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable, models.ErrCodeUnavailable

	default:
		return http.StatusInternalServerError, models.ErrCodeInternalError
	}
}
