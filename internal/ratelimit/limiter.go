package ratelimit

import (
	"context"
	"time"
)

// ==============================================
// STORE INTERFACE
// ==============================================

// Result reports the outcome of one check-and-record call
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // how long until the window resets; 0 when allowed
}

// Store is the keyed fixed-window counter behind the limiter. Allow must
// atomically check and record one attempt for the key: either the attempt is
// counted and allowed, or it is rejected and the window is left untouched
// beyond the rejected increment.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// ==============================================
// LIMITER
// ==============================================

// Limiter enforces a fixed-window attempt limit per phone identity
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// CheckAndRecord counts one attempt for the phone and reports whether it is
// within the window threshold. On a breach the window is NOT reset; the
// caller must wait it out.
func (l *Limiter) CheckAndRecord(ctx context.Context, phone string) (*Result, error) {
	return l.store.Allow(ctx, "otp:rate:"+phone, l.limit, l.window)
}

// compile-time interface checks
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
