package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/contestlet/contestlet/internal/clock"
)

// MemoryStore implements Store with in-process fixed windows. Suitable for
// tests and single-node deployments; use RedisStore when running more than
// one instance.
type MemoryStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	windows map[string]*fixedWindow
}

// fixedWindow counts attempts since windowStart. The window resets only when
// it elapses, never on a rejected attempt.
type fixedWindow struct {
	windowStart time.Time
	count       int
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clk,
		windows: make(map[string]*fixedWindow),
	}
}

// Allow atomically checks and records one attempt for the key
func (s *MemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	w := s.windows[key]
	if w == nil || !now.Before(w.windowStart.Add(window)) {
		w = &fixedWindow{windowStart: now}
		s.windows[key] = w
	}

	if w.count >= limit {
		return &Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.windowStart.Add(window).Sub(now),
		}, nil
	}

	w.count++
	return &Result{
		Allowed:   true,
		Remaining: limit - w.count,
	}, nil
}

// Reset clears the window for a key
func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}
