package gateway

import (
	"context"
	"time"
)

const (
	maxAttempts     = 3
	initialInterval = 500 * time.Millisecond
	multiplier      = 2
)

// withRetry runs fn up to maxAttempts times with exponential backoff,
// stopping early when the context is done. The breaker around each gateway
// call still sees every attempt, so a dead gateway trips it quickly.
func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	interval := initialInterval
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(interval):
		}
		interval *= multiplier
	}
	return result, err
}
