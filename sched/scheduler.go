package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/effectlift/effect"
	"github.com/phrazzld/effectlift/internal/config"
	"github.com/phrazzld/effectlift/internal/platform/logger"
)

// Config holds configuration for a Scheduler.
type Config struct {
	// Lanes determines how many units execute concurrently.
	Lanes int

	// QueueSize determines the buffer size for the run queue.
	QueueSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Lanes:     2,
		QueueSize: 100,
	}
}

// Scheduler executes tasks on a fixed pool of lanes fed by a buffered run
// queue. It implements effect.Scheduler.
type Scheduler struct {
	queue  *RunQueue
	pool   *Pool
	logger *slog.Logger
}

var _ effect.Scheduler = (*Scheduler)(nil)

// New creates and starts a scheduler.
func New(cfg Config, log *slog.Logger) *Scheduler {
	queue := NewRunQueue(cfg.QueueSize, log)
	pool := NewPool(queue, cfg.Lanes, log)
	pool.Start()

	return &Scheduler{
		queue:  queue,
		pool:   pool,
		logger: log,
	}
}

// Schedule places the unit on the run queue. If the queue is saturated or
// closed, the unit falls back to a dedicated lane so that an awaiting caller
// cannot deadlock on a full queue.
func (s *Scheduler) Schedule(ctx context.Context, run func(ctx context.Context)) {
	if err := s.queue.Enqueue(ctx, run); err != nil {
		s.logger.Warn("run queue unavailable, using dedicated lane", "error", err)
		go run(ctx)
	}
}

// Yield suspends the calling task for at least d. Cancellation cuts the
// suspension short and returns effect.ErrCancelled.
func (s *Scheduler) Yield(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return effect.ErrCancelled
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return effect.ErrCancelled
	case <-timer.C:
		return nil
	}
}

// Now returns the scheduler's clock reading. time.Time carries a monotonic
// component, so differences between readings are immune to wall clock steps.
func (s *Scheduler) Now() time.Time {
	return time.Now()
}

// Stop gracefully shuts down the scheduler. Buffered units that have not
// started are discarded.
func (s *Scheduler) Stop() {
	s.queue.Close()
	s.pool.Stop()
}

var (
	defaultOnce  sync.Once
	defaultSched *Scheduler
)

// Default returns the shared scheduler, started on first use. Configuration
// is loaded from the environment (EFFECTLIFT_SCHEDULER_LANES,
// EFFECTLIFT_SCHEDULER_QUEUE_SIZE, EFFECTLIFT_LOGGING_LEVEL); load failures
// fall back to built-in defaults.
func Default() *Scheduler {
	defaultOnce.Do(func() {
		cfg := DefaultConfig()
		log := slog.Default()

		if loaded, err := config.Load(); err == nil {
			cfg.Lanes = loaded.Scheduler.Lanes
			cfg.QueueSize = loaded.Scheduler.QueueSize
			if l, err := logger.Setup(loaded.Logging); err == nil {
				log = l
			}
		} else {
			log.Warn("failed to load scheduler config, using defaults", "error", err)
		}

		defaultSched = New(cfg, log)
	})
	return defaultSched
}
