package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient so a [Backoff] attempts the
// operation again. Unwrapped errors fail on the first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff is a retry schedule: up to Attempts tries with the delay doubling
// after each failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// APIBackoff is the schedule the iNaturalist client uses. The API asks
// integrations to stay at roughly one request per second, so the delays
// start there.
var APIBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry runs fn under the schedule. Errors wrapped in [RetryableError]
// trigger another attempt; anything else returns immediately. Returns the
// last error when the schedule is exhausted, or ctx.Err() on cancellation
// while waiting.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var lastErr error
	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.As(err, new(*RetryableError)) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
