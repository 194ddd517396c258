package effect

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by tasks and liftings
var (
	// ErrCancelled is returned when cooperative cancellation is observed at a
	// suspension point, either because Cancel was called or because the
	// caller's context was cancelled.
	ErrCancelled = errors.New("task cancelled")

	// ErrTaskConsumed is returned when a task that has already been executed
	// is awaited or run again. A task runs at most once; construct a new task
	// (or use a retry factory) to re-run the same work.
	ErrTaskConsumed = errors.New("task already executed")
)

// TimeoutError reports that a deadline elapsed before the task completed.
type TimeoutError struct {
	// Limit is the deadline that elapsed.
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task timed out after %s", e.Limit)
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// RetryExhaustedError reports that a retried task gave up, either because all
// attempts failed or because the last error was not retryable. It carries the
// most recent underlying error for diagnostics.
type RetryExhaustedError struct {
	// Attempts is the number of attempts actually made.
	Attempts int

	// Err is the error from the final attempt.
	Err error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap exposes the final attempt's error to errors.Is and errors.As.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetryExhausted reports whether err is (or wraps) a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var re *RetryExhaustedError
	return errors.As(err, &re)
}
