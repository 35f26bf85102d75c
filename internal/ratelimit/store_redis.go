package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store with a fixed-window counter in Redis. INCR and
// the window expiry are applied atomically via a script so concurrent
// requests for the same phone cannot slip past the threshold.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// allowScript increments the counter and stamps the window TTL on first use.
// Returns {count, pttl}.
var allowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// Allow atomically checks and records one attempt for the key
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	raw, err := allowScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(raw) != 2 {
		return nil, fmt.Errorf("rate limit check returned %d values", len(raw))
	}

	count, _ := raw[0].(int64)
	pttl, _ := raw[1].(int64)

	if int(count) > limit {
		return &Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: time.Duration(pttl) * time.Millisecond,
		}, nil
	}

	return &Result{
		Allowed:   true,
		Remaining: limit - int(count),
	}, nil
}

// Reset clears the window for a key
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
