package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contestlet/contestlet/internal/models"
)

const challengeKeyPrefix = "otp:challenge:"

// RedisChallengeStore implements ChallengeStore on Redis so OTP state is
// shared across instances. Expiry rides on the key TTL; the verify cycle runs
// as a script so compare/decrement/destroy is atomic per phone.
type RedisChallengeStore struct {
	client *redis.Client
}

func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

// verifyScript returns 0 = no challenge, 1 = ok, 2 = mismatch, 3 = exhausted
var verifyScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
local attempts = tonumber(redis.call("HGET", KEYS[1], "attempts"))
if attempts <= 0 then
	return 3
end
if redis.call("HGET", KEYS[1], "code") ~= ARGV[1] then
	redis.call("HINCRBY", KEYS[1], "attempts", -1)
	return 2
end
redis.call("DEL", KEYS[1])
return 1
`)

func (s *RedisChallengeStore) Put(ctx context.Context, challenge *models.OTPChallenge) error {
	key := challengeKeyPrefix + challenge.Phone

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", challenge.Code,
		"attempts", challenge.AttemptsRemaining,
		"issued_at", challenge.IssuedAt.UnixMilli(),
	)
	pipe.PExpireAt(ctx, key, challenge.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	return nil
}

// Verify runs the atomic verify cycle. Expiry is enforced by the key TTL on
// the Redis server clock; the now parameter exists for the interface and is
// not consulted here.
func (s *RedisChallengeStore) Verify(ctx context.Context, phone, code string, now time.Time) (VerifyOutcome, error) {
	key := challengeKeyPrefix + phone

	res, err := verifyScript.Run(ctx, s.client, []string{key}, code).Int()
	if err != nil {
		return VerifyNoChallenge, fmt.Errorf("failed to verify OTP challenge: %w", err)
	}

	switch res {
	case 1:
		return VerifyOK, nil
	case 2:
		return VerifyMismatch, nil
	case 3:
		return VerifyExhausted, nil
	default:
		return VerifyNoChallenge, nil
	}
}

var _ ChallengeStore = (*RedisChallengeStore)(nil)
