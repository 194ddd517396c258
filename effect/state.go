package effect

import "context"

// Stateful pairs a task's value with the state threaded alongside it.
type Stateful[T, S any] struct {
	Value T
	State S
}

// AddState threads a single state snapshot through the task's result: the
// base task runs, handler is applied to its value and initial, and the lifted
// task resolves with the value half of the handler's result.
//
// State is not preserved across separate executions. Each AddState call
// captures exactly one initial snapshot, exclusively owned by the single
// in-flight execution; to thread state again (for example per retry attempt)
// the caller must re-wrap. Errors from the base task pass through unchanged.
func AddState[T, S any](t *Task[T], initial S, handler func(T, S) (T, S)) *Task[T] {
	return NewTask(t.sched, func(ctx context.Context) (T, error) {
		v, err := t.run(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		v2, _ := handler(v, initial)
		return v2, nil
	})
}

// AddStateful is AddState keeping the final state alongside the value. This
// is the shape-changing form of the state lifting.
func AddStateful[T, S any](t *Task[T], initial S, handler func(T, S) (T, S)) *Task[Stateful[T, S]] {
	return NewTask(t.sched, func(ctx context.Context) (Stateful[T, S], error) {
		v, err := t.run(ctx)
		if err != nil {
			return Stateful[T, S]{}, err
		}
		v2, s2 := handler(v, initial)
		return Stateful[T, S]{Value: v2, State: s2}, nil
	})
}

// StateLifting packages AddState as a composable lifting.
func StateLifting[T, S any](initial S, handler func(T, S) (T, S)) Lifting[T, T] {
	transform := func(t *Task[T]) *Task[T] {
		return AddState(t, initial, handler)
	}
	return Lifting[T, T]{Name: "state", Transform: transform, Lift: transform}
}

// StatefulLifting packages AddStateful as a composable lifting. Unlike
// StateLifting, the lifted value carries the threaded state.
func StatefulLifting[T, S any](initial S, handler func(T, S) (T, S)) Lifting[T, Stateful[T, S]] {
	transform := func(t *Task[T]) *Task[Stateful[T, S]] {
		return AddStateful(t, initial, handler)
	}
	return Lifting[T, Stateful[T, S]]{Name: "stateful", Transform: transform, Lift: transform}
}
