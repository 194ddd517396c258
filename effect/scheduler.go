package effect

import (
	"context"
	"time"
)

// Scheduler is the capability that executes tasks. The effect package only
// consumes this interface; the sched package provides the default
// implementation.
// Version: 1.0
type Scheduler interface {
	// Schedule places a unit of work on a lane for execution. The unit
	// receives a context that is cancelled when the task owning it is
	// cancelled.
	Schedule(ctx context.Context, run func(ctx context.Context))

	// Yield suspends the calling task for at least d, returning control to
	// the scheduler. It is a designated suspension point: if ctx is cancelled
	// while suspended, Yield returns ErrCancelled.
	Yield(ctx context.Context, d time.Duration) error

	// Now returns the scheduler's monotonic clock reading.
	Now() time.Time
}
