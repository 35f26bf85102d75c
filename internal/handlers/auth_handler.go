package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type AuthService interface {
	RequestOTP(ctx context.Context, phone string) (*dto.RequestOTPResponse, error)
	VerifyOTP(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error)
	VerifyPhoneInsecure(ctx context.Context, phone string) (*dto.VerifyPhoneResponse, error)
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// ==============================================
// ENDPOINTS
// ==============================================

// RequestOTP handles POST /auth/request-otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidPhone, err)
		return
	}

	resp, err := h.service.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /auth/verify-otp
//
// Failed verification attempts (wrong code, expired or exhausted challenge)
// are reported as 200 with success=false rather than an error status; the
// request itself was well-formed and processed.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeCodeMismatch, err)
		return
	}

	resp, err := h.service.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		if models.IsAuthError(err) {
			c.JSON(http.StatusOK, dto.VerifyOTPResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPhone handles POST /auth/verify-phone (legacy, code-free issuance)
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req dto.VerifyPhoneRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidPhone, err)
		return
	}

	resp, err := h.service.VerifyPhoneInsecure(c.Request.Context(), req.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/request-otp", h.RequestOTP)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/verify-phone", h.VerifyPhone)
	}
}
