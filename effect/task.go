package effect

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task represents a deferred asynchronous computation producing a value of
// type T or failing with an error. A task owns no resources itself; it is
// bound to the Scheduler that will run it.
//
// A task runs at most once: executing it (via Await or via a lifting that
// wraps it) consumes it, and any further execution attempt returns
// ErrTaskConsumed. Re-running the same work requires constructing a new task,
// typically through a retry Factory.
type Task[T any] struct {
	id    uuid.UUID
	sched Scheduler
	body  func(ctx context.Context) (T, error)
	pure  bool

	mu        sync.Mutex
	started   bool
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
	value     T
	err       error
}

// NewTask wraps body as a task bound to scheduler s. The body is not started;
// it runs when the task is awaited or executed by a wrapping lifting.
func NewTask[T any](s Scheduler, body func(ctx context.Context) (T, error)) *Task[T] {
	return &Task[T]{
		id:    uuid.New(),
		sched: s,
		body:  body,
		done:  make(chan struct{}),
	}
}

// Pure returns a task that completes synchronously with v and has no failure
// path. Liftings must treat pure tasks as a no-op up to the wrapped value
// (the lift-purity law).
func Pure[T any](s Scheduler, v T) *Task[T] {
	t := NewTask(s, func(context.Context) (T, error) {
		return v, nil
	})
	t.pure = true
	return t
}

// Fail returns a task that fails immediately with err.
func Fail[T any](s Scheduler, err error) *Task[T] {
	return NewTask(s, func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// ID returns the task's identifier, used in logs and diagnostics.
func (t *Task[T]) ID() uuid.UUID {
	return t.id
}

// Scheduler returns the scheduler the task is bound to.
func (t *Task[T]) Scheduler() Scheduler {
	return t.sched
}

// IsPure reports whether the task was constructed with Pure.
func (t *Task[T]) IsPure() bool {
	return t.pure
}

// Cancel requests cooperative cancellation. If the task has not started, it
// will fail with ErrCancelled without running its body. If it is in flight,
// its context is cancelled and the body observes that at its next suspension
// point. Cancellation propagates to any lifting wrapping the task: pending
// timers and retry sleeps are cut short.
func (t *Task[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	if t.cancel != nil {
		t.cancel()
	}
}

// Await submits the task to its scheduler and blocks until it completes,
// returning the produced value or the task's error. Awaiting a task that has
// already executed returns ErrTaskConsumed.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	return t.await(ctx, 0)
}

// AwaitTimeout is Await bounded by limit. If limit elapses before the task
// completes, the task is cancelled (best effort) and a TimeoutError is
// returned. A limit <= 0 fires immediately: the body never starts.
func (t *Task[T]) AwaitTimeout(ctx context.Context, limit time.Duration) (T, error) {
	var zero T
	if limit <= 0 {
		t.Cancel()
		return zero, &TimeoutError{Limit: limit}
	}
	return t.await(ctx, limit)
}

func (t *Task[T]) await(ctx context.Context, limit time.Duration) (T, error) {
	var zero T

	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return zero, ErrTaskConsumed
	}
	t.mu.Unlock()

	t.sched.Schedule(ctx, func(runCtx context.Context) {
		_, _ = t.run(runCtx)
	})

	var timer <-chan time.Time
	if limit > 0 {
		tm := time.NewTimer(limit)
		defer tm.Stop()
		timer = tm.C
	}

	select {
	case <-t.done:
		return t.result()
	case <-timer:
		t.Cancel()
		return zero, &TimeoutError{Limit: limit}
	case <-ctx.Done():
		t.Cancel()
		return zero, ErrCancelled
	}
}

// run executes the task body on the calling goroutine, consuming the task.
// Liftings use run rather than Await so that a composed pipeline stays a
// single unit of work on one lane; only the outermost task is submitted to
// the scheduler.
func (t *Task[T]) run(ctx context.Context) (T, error) {
	var zero T

	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return zero, ErrTaskConsumed
	}
	t.started = true
	if t.cancelled {
		t.err = ErrCancelled
		close(t.done)
		t.mu.Unlock()
		return zero, ErrCancelled
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()
	defer cancel()

	v, err := t.body(runCtx)
	if errors.Is(err, context.Canceled) {
		err = ErrCancelled
	}

	t.mu.Lock()
	t.value, t.err = v, err
	t.mu.Unlock()
	close(t.done)

	if err != nil {
		return zero, err
	}
	return v, nil
}

func (t *Task[T]) result() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		var zero T
		return zero, t.err
	}
	return t.value, nil
}

// renew returns an unstarted task sharing the receiver's body and scheduler.
// The receiver is left untouched. Used by RetryLifting, whose attempts each
// need a fresh single-use task over the same body.
func (t *Task[T]) renew() *Task[T] {
	nt := NewTask(t.sched, t.body)
	nt.pure = t.pure
	return nt
}
