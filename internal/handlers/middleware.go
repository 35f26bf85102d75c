package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contestlet/contestlet/internal/auth"
	"github.com/contestlet/contestlet/internal/models"
)

// phoneContextKey is where RequireUser stores the verified phone identity
const phoneContextKey = "auth_phone"

// bearerToken extracts the credential from an Authorization: Bearer header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireUser validates the session token and stores the bound phone in the
// request context
func RequireUser(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": models.ErrCodeUnauthorized,
			})
			return
		}

		phone, err := auth.ValidateToken(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": models.ErrCodeUnauthorized,
			})
			return
		}

		c.Set(phoneContextKey, phone)
		c.Next()
	}
}

// RequireAdmin checks the pre-shared admin credential
func RequireAdmin(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": models.ErrCodeUnauthorized,
			})
			return
		}

		if token != adminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": models.ErrCodeForbidden,
			})
			return
		}

		c.Next()
	}
}

// callerPhone returns the phone set by RequireUser
func callerPhone(c *gin.Context) string {
	return c.GetString(phoneContextKey)
}
