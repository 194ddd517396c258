package effect

import (
	"context"
	"log/slog"
)

// LogHooks are the three callback slots observed by the logging lifting. Any
// nil hook is skipped.
type LogHooks[T any] struct {
	// OnStart runs synchronously before the base task's body begins.
	OnStart func()

	// OnSuccess observes the produced value after the task completes.
	OnSuccess func(v T)

	// OnError observes the task's error after it fails.
	OnError func(err error)
}

// AddLogging wraps the task with the given hooks. The ordering guarantee is
// strict: OnStart precedes any observable effect of the base task, and
// OnSuccess/OnError follow its completion. The lifting never swallows or
// transforms what it observes — a failing task re-raises the identical error.
func AddLogging[T any](t *Task[T], hooks LogHooks[T]) *Task[T] {
	return NewTask(t.sched, func(ctx context.Context) (T, error) {
		if hooks.OnStart != nil {
			hooks.OnStart()
		}
		v, err := t.run(ctx)
		if err != nil {
			if hooks.OnError != nil {
				hooks.OnError(err)
			}
			var zero T
			return zero, err
		}
		if hooks.OnSuccess != nil {
			hooks.OnSuccess(v)
		}
		return v, nil
	})
}

// LoggingLifting packages AddLogging as a composable lifting.
func LoggingLifting[T any](hooks LogHooks[T]) Lifting[T, T] {
	transform := func(t *Task[T]) *Task[T] {
		return AddLogging(t, hooks)
	}
	return Lifting[T, T]{Name: "logging", Transform: transform, Lift: transform}
}

// SlogHooks builds hooks that log task lifecycle events through logger with
// structured attributes.
func SlogHooks[T any](logger *slog.Logger, name string) LogHooks[T] {
	logger = logger.With("task", name)
	return LogHooks[T]{
		OnStart: func() {
			logger.Info("task started")
		},
		OnSuccess: func(v T) {
			logger.Info("task completed", "value", v)
		},
		OnError: func(err error) {
			logger.Error("task failed", "error", err)
		},
	}
}
