package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/contestlet/contestlet/internal/models"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() (string, error) {
	// Random number in [100000, 999999]
	max := big.NewInt(900000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := n.Int64() + 100000
	return fmt.Sprintf("%0*d", models.OTPLength, otp), nil
}
