package effect

import (
	"context"
	"errors"
	"time"
)

// AddTimeout races the base task against a timer of limit. If the timer fires
// first, the base task is cancelled (best effort — side effects it already
// performed are not rolled back) and the lifted task resolves with
// defaultValue. Resolving with a value rather than an error is deliberate:
// callers that need a timeout error should use AwaitTimeout instead.
//
// A limit <= 0 fires immediately; the base task's body never starts.
//
// Cancellation is cooperative: the base body observes the deadline through
// its context at suspension points. If the caller's own context carries a
// shorter deadline, that deadline takes precedence and propagates as an
// error rather than resolving defaultValue.
func AddTimeout[T any](t *Task[T], limit time.Duration, defaultValue T) *Task[T] {
	return NewTask(t.sched, func(ctx context.Context) (T, error) {
		if limit <= 0 {
			t.Cancel()
			return defaultValue, nil
		}

		runCtx, cancel := context.WithTimeout(ctx, limit)
		defer cancel()

		v, err := t.run(runCtx)
		if err == nil {
			return v, nil
		}
		// Distinguish this lifting's timer from the caller's deadline: only
		// resolve the default when the outer context is still live. A body
		// error arriving in the same instant the timer fires is resolved as
		// a timeout; that race is inherent to the deadline check.
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return defaultValue, nil
		}
		var zero T
		return zero, err
	})
}

// TimeoutLifting packages AddTimeout as a composable lifting.
func TimeoutLifting[T any](limit time.Duration, defaultValue T) Lifting[T, T] {
	transform := func(t *Task[T]) *Task[T] {
		return AddTimeout(t, limit, defaultValue)
	}
	return Lifting[T, T]{Name: "timeout", Transform: transform, Lift: transform}
}
