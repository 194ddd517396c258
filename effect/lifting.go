package effect

// Lifting is a named transformation that wraps a task with cross-cutting
// behavior. Liftings are stateless descriptors: one value can safely wrap any
// number of tasks.
//
// Transform and Lift have the same signature. They are kept distinct because
// some liftings change the shape of the lifted value (StatefulLifting pairs
// the value with its threaded state); the two must agree whenever the input
// task is pure — the lift-purity law.
type Lifting[A, B any] struct {
	// Name identifies the lifting in diagnostics and composed names.
	Name string

	// Transform wraps a task with the lifting's effect.
	Transform func(t *Task[A]) *Task[B]

	// Lift applies the lifting on behalf of a caller. Must agree with
	// Transform on pure tasks.
	Lift func(t *Task[A]) *Task[B]
}

// LiftToTask applies l to t, producing the lifted task.
func LiftToTask[A, B any](l Lifting[A, B], t *Task[A]) *Task[B] {
	return l.Lift(t)
}

// Compose chains two liftings: l1's effect is applied to the task first, and
// l2 wraps the result. Composition is not commutative; ordering must be
// chosen deliberately at each call site. For example, composing RetryLifting
// then TimeoutLifting places the timeout outermost, so every attempt shares
// one total deadline, whereas the reverse gives each attempt its own fresh
// timeout.
func Compose[A, B, C any](l1 Lifting[A, B], l2 Lifting[B, C]) Lifting[A, C] {
	return Lifting[A, C]{
		Name: l2.Name + "(" + l1.Name + ")",
		Transform: func(t *Task[A]) *Task[C] {
			return l2.Transform(l1.Transform(t))
		},
		Lift: func(t *Task[A]) *Task[C] {
			return l2.Lift(l1.Lift(t))
		},
	}
}
