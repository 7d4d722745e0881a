package faults

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy controls the retry loop.
type RetryPolicy struct {
	// Attempts is the maximum number of tries, including the first.
	Attempts int
	// BaseDelay is the delay before the second attempt; it doubles on
	// every further attempt.
	BaseDelay time.Duration
	// MaxDelay caps the per-attempt delay. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultRetryPolicy retries transient faults three times with a short
// exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  2 * time.Second,
	}
}

// Retry runs fn until it succeeds, the error is not retryable, the policy
// is exhausted, or ctx is done.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	delay := policy.BaseDelay
	var err error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !Retryable(err) || attempt == policy.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
	return err
}
