// Package ratelimit provides the sliding-window limiter applied to the
// public API. This is separate from the per-submitter cooldown, which the
// site store enforces as part of the submission rules.
package ratelimit

import (
	"context"
	"time"
)

// Store records requests and reports how many fall inside the current window.
type Store interface {
	// Record registers a request for key and returns the count of requests
	// in the window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// Limiter decides whether a request from a given client key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// SlidingWindowLimiter allows up to limit requests per key per window.
type SlidingWindowLimiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a sliding window rate limiter.
func NewSlidingWindowLimiter(store Store, limit int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, key, l.window)
	if err != nil {
		return false, err
	}

	return count <= l.limit, nil
}
