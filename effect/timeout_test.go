package effect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowTask completes with v after d, or fails with the context's error if it
// is cancelled first.
func slowTask(s Scheduler, d time.Duration, v int) *Task[int] {
	return NewTask(s, func(ctx context.Context) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(d):
			return v, nil
		}
	})
}

func TestAddTimeout(t *testing.T) {
	t.Parallel()

	t.Run("timer first resolves the default value", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		task := AddTimeout(slowTask(s, 500*time.Millisecond, 99), 50*time.Millisecond, -1)

		start := time.Now()
		v, err := task.Await(context.Background())
		elapsed := time.Since(start)

		require.NoError(t, err, "timeout resolves a value, not an error")
		assert.Equal(t, -1, v)
		assert.Less(t, elapsed, 400*time.Millisecond, "should resolve near the timeout, not the task duration")
	})

	t.Run("task first resolves the true value", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		task := AddTimeout(slowTask(s, 30*time.Millisecond, 99), 2*time.Second, -1)

		v, err := task.Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 99, v)
	})

	t.Run("non-positive timeout fires immediately and skips the body", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		ran := false
		base := NewTask(s, func(ctx context.Context) (int, error) {
			ran = true
			return 1, nil
		})
		task := AddTimeout(base, 0, -1)

		v, err := task.Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, -1, v)
		assert.False(t, ran, "base body must never start on an immediate timeout")
	})

	t.Run("base task errors pass through", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		boom := errors.New("boom")
		task := AddTimeout(Fail[int](s, boom), time.Second, -1)

		_, err := task.Await(context.Background())

		assert.ErrorIs(t, err, boom)
	})

	t.Run("caller deadline takes precedence over the default value", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		task := AddTimeout(slowTask(s, time.Second, 99), 2*time.Second, -1)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err := task.Await(ctx)

		assert.Error(t, err, "caller deadline must not resolve the lifting's default")
	})
}

func TestTimeoutLifting_LiftPurity(t *testing.T) {
	t.Parallel()

	// A timeout large enough not to fire leaves a pure task's value intact.
	s := NewMockScheduler()
	lifting := TimeoutLifting(time.Minute, -1)

	lifted, err := lifting.Lift(Pure(s, 8)).Await(context.Background())
	require.NoError(t, err)
	transformed, err := lifting.Transform(Pure(s, 8)).Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, lifted)
	assert.Equal(t, transformed, lifted)
}
