package models

import (
	"time"
)

// ==============================================
// OTP CHALLENGE MODEL
// ==============================================

// OTPChallenge is the pending one-time code for a phone. Exactly one live
// challenge exists per phone; a new request replaces any prior one.
type OTPChallenge struct {
	Phone             string    // normalized phone identity
	Code              string    // fixed-length numeric code
	IssuedAt          time.Time // UTC
	ExpiresAt         time.Time // UTC
	AttemptsRemaining int
}

func (c *OTPChallenge) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

func (c *OTPChallenge) IsExhausted() bool {
	return c.AttemptsRemaining <= 0
}

// ==============================================
// OTP CONFIGURATION DEFAULTS
// ==============================================
const (
	OTPLength            = 6  // 6-digit OTP
	OTPExpiryMinutes     = 10 // OTP expires in 10 minutes
	OTPMaxAttempts       = 5  // Max verification attempts per challenge
	OTPRateLimit         = 5  // Max OTP requests per window per phone
	OTPRateWindowMinutes = 15 // Rate-limit window length
)
