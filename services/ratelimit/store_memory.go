package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore implements CounterStore in process memory. Suitable for
// development and tests only: counters are not shared across instances.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
	now     func() time.Time
}

type windowEntry struct {
	start time.Time
	ttl   time.Duration
	count int64
}

// NewMemoryCounterStore creates a new MemoryCounterStore
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		windows: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Incr implements CounterStore. The mutex makes increment-and-read atomic with
// respect to concurrent callers, mirroring the Redis store's guarantee.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.windows[key]
	if !ok || now.Sub(ent.start) >= ent.ttl {
		ent = &windowEntry{start: now, ttl: window}
		s.windows[key] = ent
	}
	ent.count++

	remaining := ent.ttl - now.Sub(ent.start)
	return ent.count, remaining, nil
}
