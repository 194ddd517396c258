package effect

import (
	"context"
	"sync"
	"time"
)

// MockScheduler is a simple Scheduler implementation for testing. Each
// scheduled unit runs on its own goroutine, and every Yield is recorded so
// tests can assert on suspension behavior without waiting out real delays.
type MockScheduler struct {
	// SkipDelays makes Yield return immediately (after recording) instead of
	// sleeping, keeping retry tests fast.
	SkipDelays bool

	mu     sync.Mutex
	yields []time.Duration
}

// NewMockScheduler creates a MockScheduler that skips delays.
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{SkipDelays: true}
}

// Schedule runs the unit on a new goroutine.
func (s *MockScheduler) Schedule(ctx context.Context, run func(ctx context.Context)) {
	go run(ctx)
}

// Yield records the requested suspension and honors cancellation.
func (s *MockScheduler) Yield(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.yields = append(s.yields, d)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}
	if s.SkipDelays || d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ErrCancelled
	case <-timer.C:
		return nil
	}
}

// Now returns the current time.
func (s *MockScheduler) Now() time.Time {
	return time.Now()
}

// Yields returns a copy of the recorded suspensions.
func (s *MockScheduler) Yields() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.yields))
	copy(out, s.yields)
	return out
}
