package recovery

import (
	"context"
	"time"
)

const defaultMaxAttempts = 3

// Retry runs fn, retrying retryable failures with exponential backoff
// seeded by the classified kind's base delay. Non-retryable failures and
// context cancellation return immediately.
func Retry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		classified := Classify(lastErr)
		if !classified.Retryable || attempt == maxAttempts-1 {
			return lastErr
		}

		delay := classified.RetryDelay
		if delay <= 0 {
			delay = 500 * time.Millisecond
		}
		delay <<= attempt

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}
