package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements CounterStore on Redis. INCR is atomic on the
// server, so concurrent callers sharing a key each observe a distinct count;
// EXPIRE NX starts the window TTL exactly once per window.
type RedisCounterStore struct {
	rdb *redis.Client
}

// NewRedisCounterStore creates a new RedisCounterStore
func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

// Incr implements CounterStore
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to increment admission counter: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// Key existed without TTL (e.g. pre-seeded); treat as a full window.
		remaining = window
	}
	return incr.Val(), remaining, nil
}
