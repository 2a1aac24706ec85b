package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend connectivity failures (Redis timeouts,
// refused connections). Wrap it with Retryable to opt into retries.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks an error as transient: RetryWithBackoff retries
// it, anything else aborts the attempt loop immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the transient marker.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting from one second. Context cancellation cuts the
// backoff sleep short.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	wait := time.Second
	var last error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		last = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
	return last
}
