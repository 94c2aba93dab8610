// ABOUTME: Retry utilities for outbound API calls
// ABOUTME: Exponential backoff with jitter, shared by OpenAI and Strava clients
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before the given attempt (1-based).
// The base delay doubles per attempt, capped at 30 seconds, with
// random jitter between -25% and +25%.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// Retry runs fn up to maxRetries+1 times, sleeping with Backoff between
// attempts. It returns the last error if every attempt fails, and stops
// early when the context is cancelled.
func Retry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(Backoff(baseDelay, attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
