package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/auth"
	"github.com/contestlet/contestlet/internal/clock"
	"github.com/contestlet/contestlet/internal/models"
	"github.com/contestlet/contestlet/internal/ratelimit"
	"github.com/contestlet/contestlet/internal/repository"
	"github.com/contestlet/contestlet/internal/sms"
)

// ==============================================
// COLLABORATOR INTERFACES (for testing)
// ==============================================

type RateLimiter interface {
	CheckAndRecord(ctx context.Context, phone string) (*ratelimit.Result, error)
}

// ==============================================
// AUTH SERVICE
// ==============================================

type AuthService struct {
	challenges  repository.ChallengeStore
	limiter     RateLimiter
	sender      sms.Sender
	clock       clock.Clock
	jwtSecret   string
	otpTTL      time.Duration
	maxAttempts int
}

func NewAuthService(
	challenges repository.ChallengeStore,
	limiter RateLimiter,
	sender sms.Sender,
	clk clock.Clock,
	jwtSecret string,
	otpTTL time.Duration,
	maxAttempts int,
) *AuthService {
	return &AuthService{
		challenges:  challenges,
		limiter:     limiter,
		sender:      sender,
		clock:       clk,
		jwtSecret:   jwtSecret,
		otpTTL:      otpTTL,
		maxAttempts: maxAttempts,
	}
}

// ==============================================
// REQUEST OTP
// ==============================================

func (s *AuthService) RequestOTP(ctx context.Context, rawPhone string) (*dto.RequestOTPResponse, error) {
	// 1. Normalize and validate the phone identity
	phone, err := auth.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	// 2. Rate limit check-and-record
	res, err := s.limiter.CheckAndRecord(ctx, phone)
	if err != nil {
		return nil, models.Unavailable(err)
	}
	if !res.Allowed {
		return nil, models.ErrRateLimited
	}

	// 3. Generate a fresh code; storing it replaces any prior challenge
	code, err := auth.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	now := s.clock.Now()
	challenge := &models.OTPChallenge{
		Phone:             phone,
		Code:              code,
		IssuedAt:          now,
		ExpiresAt:         now.Add(s.otpTTL),
		AttemptsRemaining: s.maxAttempts,
	}

	if err := s.challenges.Put(ctx, challenge); err != nil {
		return nil, models.Unavailable(err)
	}

	// 4. Dispatch the code
	if err := s.sender.Send(ctx, phone, code); err != nil {
		return nil, fmt.Errorf("failed to dispatch code: %w", err)
	}

	return &dto.RequestOTPResponse{
		Message:   "Verification code sent",
		ExpiresIn: int(s.otpTTL.Seconds()),
	}, nil
}

// ==============================================
// VERIFY OTP
// ==============================================

func (s *AuthService) VerifyOTP(ctx context.Context, rawPhone, code string) (*dto.VerifyOTPResponse, error) {
	phone, err := auth.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	outcome, err := s.challenges.Verify(ctx, phone, code, s.clock.Now())
	if err != nil {
		return nil, models.Unavailable(err)
	}

	switch outcome {
	case repository.VerifyOK:
		// consumed below
	case repository.VerifyMismatch:
		return nil, models.ErrCodeMismatch
	case repository.VerifyExhausted:
		return nil, models.ErrChallengeExhausted
	default:
		return nil, models.ErrNoPendingChallenge
	}

	token, expiresIn, err := auth.GenerateToken(phone, s.jwtSecret, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.VerifyOTPResponse{
		Success:     true,
		Message:     "Phone verified successfully",
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// ==============================================
// LEGACY VERIFY-PHONE (NO CODE CHECK)
// ==============================================

// VerifyPhoneInsecure issues a session token without any code check. It backs
// the legacy /auth/verify-phone endpoint for non-production use only and is
// named so it cannot be mistaken for verified OTP auth.
func (s *AuthService) VerifyPhoneInsecure(ctx context.Context, rawPhone string) (*dto.VerifyPhoneResponse, error) {
	phone, err := auth.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	log.Warn().Str("phone", phone).Msg("issuing token via insecure verify-phone path")

	token, expiresIn, err := auth.GenerateToken(phone, s.jwtSecret, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.VerifyPhoneResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
