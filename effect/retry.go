package effect

import (
	"context"
	"errors"
	"math"
	"time"
)

// Factory produces a fresh task for each retry attempt. A task runs at most
// once, so retry cannot re-execute a single prebuilt task; it needs the means
// to construct a new one per attempt.
type Factory[T any] func() *Task[T]

// RetryOptions configures AddRetry.
type RetryOptions struct {
	// MaxAttempts caps the total number of attempts, the first included.
	// Values below 1 mean a single attempt.
	MaxAttempts int

	// Delay is the fixed pause between attempts when Backoff is nil.
	Delay time.Duration

	// Backoff, when set, overrides Delay with a per-attempt strategy.
	Backoff Backoff

	// ShouldRetry decides whether an error is worth another attempt. When
	// nil, every error except ErrCancelled is retried. ErrCancelled is never
	// retried regardless of this predicate.
	ShouldRetry func(error) bool

	// OnRetry, when set, observes each upcoming retry. attempt counts the
	// attempts already made. It runs synchronously; expensive work here
	// delays the retry.
	OnRetry func(attempt int, err error)
}

// AddRetry runs tasks produced by factory until one succeeds or the attempt
// budget is spent. The first attempt's task is created eagerly to bind the
// lifted task to a scheduler; later attempts create theirs lazily.
//
// Between attempts the task suspends on the scheduler for the configured
// delay; cancellation during the pause is observed and returned as
// ErrCancelled. Exhaustion — the final attempt failing, or an error
// ShouldRetry declines — surfaces as a RetryExhaustedError wrapping the last
// underlying error. ErrCancelled propagates as itself, immediately.
func AddRetry[T any](factory Factory[T], opts RetryOptions) *Task[T] {
	first := factory()

	return NewTask(first.sched, func(ctx context.Context) (T, error) {
		var zero T
		max := opts.MaxAttempts
		if max < 1 {
			max = 1
		}

		var lastErr error
		for attempt := 1; attempt <= max; attempt++ {
			if ctx.Err() != nil {
				return zero, ErrCancelled
			}

			t := first
			if attempt > 1 {
				t = factory()
			}

			v, err := t.run(ctx)
			if err == nil {
				return v, nil
			}
			lastErr = err

			if errors.Is(err, ErrCancelled) {
				return zero, err
			}
			if !retryable(opts, err) {
				return zero, &RetryExhaustedError{Attempts: attempt, Err: err}
			}
			if attempt == max {
				break
			}

			if opts.OnRetry != nil {
				opts.OnRetry(attempt, err)
			}
			if yieldErr := t.sched.Yield(ctx, retryDelay(opts, attempt)); yieldErr != nil {
				return zero, yieldErr
			}
		}

		return zero, &RetryExhaustedError{Attempts: max, Err: lastErr}
	})
}

// RetryLifting packages retry as a composable lifting. Each attempt re-runs
// the wrapped task's body through a fresh task, so the body must be safe to
// invoke more than once; when re-creating the task requires per-attempt
// setup, use AddRetry with an explicit Factory instead.
func RetryLifting[T any](opts RetryOptions) Lifting[T, T] {
	transform := func(t *Task[T]) *Task[T] {
		return AddRetry(func() *Task[T] { return t.renew() }, opts)
	}
	return Lifting[T, T]{Name: "retry", Transform: transform, Lift: transform}
}

func retryable(opts RetryOptions, err error) bool {
	if opts.ShouldRetry == nil {
		return true
	}
	return opts.ShouldRetry(err)
}

func retryDelay(opts RetryOptions, attempt int) time.Duration {
	if opts.Backoff != nil {
		return opts.Backoff.Next(attempt)
	}
	return opts.Delay
}

// Backoff determines the pause before the next attempt.
type Backoff interface {
	// Next returns the delay after `attempt` attempts have been made
	// (attempt starts at 1).
	Next(attempt int) time.Duration
}

// ConstantBackoff pauses a fixed duration between attempts.
type ConstantBackoff struct {
	Delay time.Duration
}

func (b ConstantBackoff) Next(int) time.Duration {
	return b.Delay
}

// ExponentialBackoff grows the pause geometrically: Base * Multiplier^(n-1),
// capped at Max. Multiplier defaults to 2 when zero.
type ExponentialBackoff struct {
	Base       time.Duration
	Max        time.Duration
	Multiplier float64
}

func (b ExponentialBackoff) Next(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier == 0 {
		multiplier = 2.0
	}
	delay := float64(b.Base) * math.Pow(multiplier, float64(attempt-1))
	if b.Max > 0 && time.Duration(delay) > b.Max {
		return b.Max
	}
	return time.Duration(delay)
}

// LinearBackoff grows the pause by a fixed increment per attempt, capped at
// Max.
type LinearBackoff struct {
	Initial   time.Duration
	Increment time.Duration
	Max       time.Duration
}

func (b LinearBackoff) Next(attempt int) time.Duration {
	delay := b.Initial + time.Duration(attempt-1)*b.Increment
	if b.Max > 0 && delay > b.Max {
		return b.Max
	}
	return delay
}

// RetryOnAny retries every non-nil error.
func RetryOnAny(err error) bool {
	return err != nil
}

// RetryNever disables retries while keeping the retry instrumentation.
func RetryNever(error) bool {
	return false
}

// RetryOnTimeout retries deadline errors, whether surfaced as a TimeoutError
// or as context.DeadlineExceeded. Pair with per-attempt timeouts to give each
// retry a fresh deadline.
func RetryOnTimeout(err error) bool {
	return IsTimeout(err) || errors.Is(err, context.DeadlineExceeded)
}

// RetryOn builds a predicate retrying only the given errors, matched with
// errors.Is.
func RetryOn(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}
