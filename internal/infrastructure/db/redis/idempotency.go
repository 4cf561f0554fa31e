package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers Idempotency-Key headers per scope.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client; a non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim atomically records key under scope and reports whether it was unseen.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(scope, key), "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim: %w", err)
	}
	return ok, nil
}

// Release deletes a claimed key so a failed request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
