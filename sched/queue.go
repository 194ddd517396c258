package sched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Common errors returned by the RunQueue
var (
	ErrQueueClosed = errors.New("run queue is closed")
	ErrQueueFull   = errors.New("run queue is full")
)

// Unit is a schedulable piece of work bound to the context of the task that
// submitted it.
type Unit struct {
	ID  uuid.UUID
	Ctx context.Context
	Run func(ctx context.Context)
}

// QueueReader provides read-only access to the unit channel, allowing lanes
// to consume work without the ability to enqueue.
// Version: 1.0
type QueueReader interface {
	// Channel returns a read-only channel for consuming units.
	Channel() <-chan Unit
}

// RunQueue implements a buffered queue of units that satisfies QueueReader
// for the lane pool and accepts submissions from the scheduler.
type RunQueue struct {
	units  chan Unit
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// NewRunQueue creates a new run queue with the specified buffer size.
func NewRunQueue(size int, logger *slog.Logger) *RunQueue {
	return &RunQueue{
		units:  make(chan Unit, size),
		logger: logger,
	}
}

// Enqueue adds a unit to the queue for execution.
// Returns an error if the queue is full or closed.
func (q *RunQueue) Enqueue(ctx context.Context, run func(ctx context.Context)) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}

	unit := Unit{ID: uuid.New(), Ctx: ctx, Run: run}
	select {
	case q.units <- unit:
		q.logger.Debug("unit enqueued",
			"unit_id", unit.ID,
			"queue_len", len(q.units),
			"queue_cap", cap(q.units))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.units))
	}
}

// Close closes the run queue, preventing further submission.
func (q *RunQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.units)
		q.logger.Info("run queue closed")
	}
}

// Channel returns a read-only channel for consuming units.
func (q *RunQueue) Channel() <-chan Unit {
	return q.units
}
