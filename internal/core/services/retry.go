package services

import (
	"context"
	"time"
)

const retryBackoff = 150 * time.Millisecond

// withReadRetry runs fn and, on failure, retries it exactly once after a
// short backoff. Only read paths use this: reads are side-effect free, so
// a duplicate attempt is always safe. Failed writes surface immediately
// unless the underlying operation is itself idempotent.
func withReadRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return err
	case <-time.After(retryBackoff):
	}

	return fn()
}
