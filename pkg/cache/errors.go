package cache

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrCorrupt reports an entry that could not be decoded. Get treats corrupt
// entries as misses and removes them.
var ErrCorrupt = errors.New("corrupt cache entry")

// RetryableError marks a transient failure, such as a busy file system.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff tries again. It returns nil for a
// nil error.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff returns the retry schedule used by RetryWithBackoff: three
// attempts, 100ms apart and doubling, bound to ctx.
func Backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)
}

// RetryWithBackoff runs fn until it succeeds, returns an error not marked
// Retryable, or the schedule from Backoff runs out. A cancelled ctx stops
// retrying and returns ctx.Err().
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return backoff.Retry(func() error {
		err := fn()
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, Backoff(ctx))
}
