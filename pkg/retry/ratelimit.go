package retry

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between operations. Used by the
// AI clients to stay under per-key request limits.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewRateLimiter creates a limiter allowing ratePerSecond operations per second.
func NewRateLimiter(ratePerSecond float64) *RateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &RateLimiter{
		interval: time.Duration(float64(time.Second) / ratePerSecond),
	}
}

// Wait blocks until the next operation is allowed or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	now := time.Now()
	next := r.last.Add(r.interval)
	if next.Before(now) {
		next = now
	}
	r.last = next
	r.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
