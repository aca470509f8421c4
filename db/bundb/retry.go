package bundb

import (
	"context"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/hoopstats/config"
)

// RetryPolicy re-runs an operation that failed on transient lock contention.
// Any other error is returned immediately.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	// OnRetry is called before each sleep with the attempt that just failed (1-based).
	OnRetry func(ctx context.Context, attempt int, err error)
}

// NewRetryPolicy builds a RetryPolicy from configuration.
func NewRetryPolicy(cfg config.RetryConfig) RetryPolicy {
	return RetryPolicy{MaxAttempts: cfg.MaxAttempts, Backoff: cfg.Backoff}
}

// Do runs op until it succeeds, fails with a non-lock error, or the attempts run out.
// Exhaustion returns an error wrapping both ErrStorageLocked and the last lock error.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsLockError(err) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(ctx, attempt, err)
		}

		timer := time.NewTimer(p.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrStorageLocked, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrStorageLocked, attempts, lastErr)
}
