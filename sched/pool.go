package sched

import (
	"context"
	"log/slog"
	"sync"
)

// Pool manages the lane goroutines that execute units from a run queue. It
// handles graceful shutdown and lane lifecycle.
type Pool struct {
	// queue provides read access to the units to be executed
	queue QueueReader

	// lanes is the number of concurrent lane goroutines to start
	lanes int

	// wg tracks active lane goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger
}

// NewPool creates a lane pool reading from queue. A lane count below 1 is
// replaced with 1.
func NewPool(queue QueueReader, lanes int, logger *slog.Logger) *Pool {
	if lanes <= 0 {
		logger.Warn("invalid lane count specified, using default",
			"specified_count", lanes,
			"default_count", 1)
		lanes = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		queue:  queue,
		lanes:  lanes,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Start launches the lane goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.lanes; i++ {
		p.wg.Add(1)
		go p.lane(i)
	}
}

// Stop signals all lanes to finish their current unit and waits for them to
// exit. Units still buffered in the queue are not executed.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// lane executes units from the queue until shutdown.
func (p *Pool) lane(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting lane", "lane_id", id)

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping lane", "lane_id", id)
			return

		case unit, ok := <-p.queue.Channel():
			if !ok {
				p.logger.Debug("run queue closed, stopping lane", "lane_id", id)
				return
			}
			p.execute(unit, id)
		}
	}
}

// execute runs a single unit on this lane.
func (p *Pool) execute(unit Unit, laneID int) {
	logger := p.logger.With(
		"unit_id", unit.ID,
		"lane_id", laneID,
	)

	if err := unit.Ctx.Err(); err != nil {
		logger.Debug("dropping unit with dead context", "error", err)
		return
	}

	logger.Debug("executing unit")
	unit.Run(unit.Ctx)
	logger.Debug("unit finished")
}
