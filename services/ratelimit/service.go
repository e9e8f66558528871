package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Decision is the outcome of an admission check
type Decision struct {
	Allowed bool
	// RetryAfterSeconds is the remainder of the current window when denied; 0 otherwise.
	RetryAfterSeconds int
}

// CounterStore is the shared fixed-window counter. Incr must be a single
// atomic increment-with-expiry at the store level: a separate read-then-write
// pair would let concurrent callers both observe the last free slot.
type CounterStore interface {
	// Incr increments the counter for key, starting a new window with the
	// given TTL if none is active, and returns the post-increment count and
	// the remaining window duration.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)
}

// Service is the admission controller: a fixed-window rate limiter keyed by
// (prefix, identifier) over a shared counter store.
type Service struct {
	store  CounterStore
	logger *zap.Logger
}

// NewService creates a new admission Service
func NewService(store CounterStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Allow decides whether a request may proceed. The counter is written on every
// call, denied ones included; counts only move up within a window.
//
// Fail-open: when the counter store is unreachable the request is admitted.
// An admission-store outage must not take down all mutation traffic.
func (s *Service) Allow(ctx context.Context, prefix, identifier string, windowSeconds, maxRequests int) Decision {
	key := fmt.Sprintf("rl:%s:%s", prefix, identifier)
	window := time.Duration(windowSeconds) * time.Second

	count, remaining, err := s.store.Incr(ctx, key, window)
	if err != nil {
		s.logger.Warn("admission counter store unreachable, failing open",
			zap.String("key", key),
			zap.Error(err))
		return Decision{Allowed: true}
	}

	if count > int64(maxRequests) {
		retryAfter := int(remaining / time.Second)
		if remaining%time.Second > 0 {
			retryAfter++
		}
		if retryAfter > windowSeconds {
			retryAfter = windowSeconds
		}
		return Decision{Allowed: false, RetryAfterSeconds: retryAfter}
	}

	return Decision{Allowed: true}
}
