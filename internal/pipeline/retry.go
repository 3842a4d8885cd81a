package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/coursecheck/internal/reportsink"
)

// MaxRetries bounds the attempts made for one report publish.
const MaxRetries = 3

// IsRetryable reports whether the sink rejected the request transiently.
func IsRetryable(err error) bool {
	var retryErr *reportsink.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns the wait before attempt+1: 2^attempt seconds capped at
// 30s, plus up to 50% jitter.
func Backoff(attempt int) time.Duration {
	base := min(time.Duration(1<<uint(attempt))*time.Second, 30*time.Second)
	return base + time.Duration(rand.Int64N(int64(base)/2))
}

// retryDelay is swapped out in tests.
var retryDelay = Backoff

// withRetry calls op up to MaxRetries times, stopping early on success or
// on an error IsRetryable rejects. onRetry, if set, sees each retried error.
func withRetry(ctx context.Context, op func(context.Context) error, onRetry func(attempt int, err error)) error {
	var err error
	for attempt := range MaxRetries {
		if err = op(ctx); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == MaxRetries-1 {
			break
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		t := time.NewTimer(retryDelay(attempt))
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
	return err
}
