// Package retry holds the single retry policy shared by the map library
// loader, the map bootstrap and the geodata gateway.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// BackoffFunc returns the wait before the retry that follows the given failed attempt (1-based)
type BackoffFunc func(attempt int) time.Duration

// Policy bounds an operation to MaxAttempts tries spaced by Backoff
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	// OnRetry is called after a failed attempt that will be retried
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Linear waits base*attempt after each failed attempt
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Constant waits the same delay after every failed attempt
func Constant(delay time.Duration) BackoffFunc {
	return func(int) time.Duration {
		return delay
	}
}

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// policyBackOff adapts a BackoffFunc to backoff.BackOff
type policyBackOff struct {
	fn      BackoffFunc
	attempt int
}

func (b *policyBackOff) NextBackOff() time.Duration {
	b.attempt++
	if b.fn == nil {
		return 0
	}
	return b.fn(b.attempt)
}

func (b *policyBackOff) Reset() {
	b.attempt = 0
}

// Do runs op until it succeeds, returns a permanent error, the context ends
// or MaxAttempts tries were made. op receives the 1-based attempt number.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempt := 0
	operation := func() (T, error) {
		attempt++
		return op(ctx, attempt)
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(&policyBackOff{fn: p.Backoff}),
		backoff.WithMaxTries(uint(maxAttempts)),
	}
	if p.OnRetry != nil {
		opts = append(opts, backoff.WithNotify(func(err error, wait time.Duration) {
			p.OnRetry(attempt, err, wait)
		}))
	}

	return backoff.Retry(ctx, operation, opts...)
}
