// Package resilience guards best-effort outbound work, mainly the budget
// alert publisher: retry with exponential backoff, a circuit breaker for
// the Redis connection, and a bulkhead capping concurrent publishes.
package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/semaphore"
)

// Config holds resilience parameters, filled from the environment.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int
}

// RetryWithBackoff runs fn up to MaxRetries+1 times with exponential
// backoff and jitter between attempts. A cancelled context stops the loop
// immediately. A non-positive InitialBackoff retries without waiting.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < cfg.MaxRetries {
			wait := backoffFor(attempt, cfg.InitialBackoff)
			if wait <= 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}

func backoffFor(attempt int, initial time.Duration) time.Duration {
	if initial <= 0 {
		return 0
	}
	backoff := time.Duration(math.Pow(2, float64(attempt))) * initial
	if half := int64(backoff / 2); half > 0 {
		backoff += time.Duration(rand.Int63n(half))
	}
	return backoff
}

// NewCircuitBreaker creates a breaker tuned for a chatty, non-critical
// dependency: it trips once more than half of a meaningful sample fails.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open probes
		Interval:    30 * time.Second, // closed-state counter reset
		Timeout:     10 * time.Second, // open -> half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

// Bulkhead caps how many callers run a section at once, so a slow
// dependency cannot soak up every request goroutine.
type Bulkhead struct {
	sem *semaphore.Weighted
}

// NewBulkhead creates a bulkhead admitting maxConcurrency callers;
// values below one fall back to a single slot.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: semaphore.NewWeighted(int64(maxConcurrency))}
}

// Acquire blocks until a slot frees up or the context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	return b.sem.Acquire(ctx, 1)
}

// Release frees a slot taken by Acquire.
func (b *Bulkhead) Release() {
	b.sem.Release(1)
}
