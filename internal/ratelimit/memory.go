package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for single-process deployments and tests.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewMemoryStore creates an empty in-memory rate limit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[string][]time.Time),
	}
}

func (s *MemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	valid := make([]time.Time, 0, len(s.requests[key])+1)

	for _, ts := range s.requests[key] {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	valid = append(valid, now)
	s.requests[key] = valid

	return int64(len(valid)), nil
}
