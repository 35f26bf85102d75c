package repository

import (
	"context"
	"sync"
	"time"

	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// CHALLENGE STORE INTERFACE
// ==============================================

// VerifyOutcome is the result of one atomic verify attempt
type VerifyOutcome int

const (
	VerifyNoChallenge VerifyOutcome = iota // none pending, or expired
	VerifyOK                               // code matched, challenge consumed
	VerifyMismatch                         // wrong code, one attempt burned
	VerifyExhausted                        // attempts already spent
)

// ChallengeStore holds the single live OTP challenge per phone.
//
// Put replaces any prior unconsumed challenge for the phone. Verify performs
// the whole lookup/compare/decrement/destroy cycle atomically with respect to
// concurrent attempts for the same phone, so a stale code can never validate
// against a replaced challenge.
type ChallengeStore interface {
	Put(ctx context.Context, challenge *models.OTPChallenge) error
	Verify(ctx context.Context, phone, code string, now time.Time) (VerifyOutcome, error)
}

// ==============================================
// IN-MEMORY CHALLENGE STORE
// ==============================================

// MemoryChallengeStore implements ChallengeStore in process memory. Used in
// tests and single-node deployments without Redis.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]*models.OTPChallenge),
	}
}

func (s *MemoryChallengeStore) Put(ctx context.Context, challenge *models.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *challenge
	s.challenges[challenge.Phone] = &cp
	return nil
}

func (s *MemoryChallengeStore) Verify(ctx context.Context, phone, code string, now time.Time) (VerifyOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.challenges[phone]
	if ch == nil {
		return VerifyNoChallenge, nil
	}
	if ch.IsExpired(now) {
		delete(s.challenges, phone)
		return VerifyNoChallenge, nil
	}
	if ch.IsExhausted() {
		return VerifyExhausted, nil
	}
	if ch.Code != code {
		ch.AttemptsRemaining--
		return VerifyMismatch, nil
	}

	delete(s.challenges, phone)
	return VerifyOK, nil
}
