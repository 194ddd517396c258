package effect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyFactory fails the first failures attempts, then succeeds with v. It
// returns the factory and a pointer to the attempt counter.
func flakyFactory(s Scheduler, failures int, v int) (Factory[int], *int) {
	attempts := new(int)
	factory := func() *Task[int] {
		return NewTask(s, func(ctx context.Context) (int, error) {
			*attempts++
			if *attempts <= failures {
				return 0, errors.New("transient failure")
			}
			return v, nil
		})
	}
	return factory, attempts
}

func TestAddRetry(t *testing.T) {
	t.Parallel()

	t.Run("always failing factory makes exactly MaxAttempts attempts", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory, attempts := flakyFactory(s, 1000, 0)
		task := AddRetry(factory, RetryOptions{MaxAttempts: 3, Delay: 10 * time.Millisecond})

		_, err := task.Await(context.Background())

		require.True(t, IsRetryExhausted(err), "expected RetryExhaustedError, got %v", err)
		assert.Equal(t, 3, *attempts)

		var exhausted *RetryExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts)
		assert.EqualError(t, exhausted.Err, "transient failure")
	})

	t.Run("succeeds on the third of five attempts", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory, attempts := flakyFactory(s, 2, 42)
		task := AddRetry(factory, RetryOptions{MaxAttempts: 5, Delay: 10 * time.Millisecond})

		v, err := task.Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 3, *attempts)
	})

	t.Run("suspends between attempts via the scheduler", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory, _ := flakyFactory(s, 1000, 0)
		task := AddRetry(factory, RetryOptions{MaxAttempts: 3, Delay: 25 * time.Millisecond})

		_, err := task.Await(context.Background())

		require.Error(t, err)
		yields := s.Yields()
		require.Len(t, yields, 2, "two pauses for three attempts")
		assert.Equal(t, 25*time.Millisecond, yields[0])
	})

	t.Run("non-retryable error gives up after one attempt", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		fatal := errors.New("fatal")
		factory := func() *Task[int] { return Fail[int](s, fatal) }
		task := AddRetry(factory, RetryOptions{
			MaxAttempts: 5,
			ShouldRetry: RetryNever,
		})

		_, err := task.Await(context.Background())

		var exhausted *RetryExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 1, exhausted.Attempts)
		assert.ErrorIs(t, err, fatal)
		assert.Empty(t, s.Yields(), "no suspension before giving up")
	})

	t.Run("cancellation propagates without wrapping", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory := func() *Task[int] {
			return NewTask(s, func(ctx context.Context) (int, error) {
				return 0, ErrCancelled
			})
		}
		task := AddRetry(factory, RetryOptions{MaxAttempts: 5})

		_, err := task.Await(context.Background())

		assert.ErrorIs(t, err, ErrCancelled)
		assert.False(t, IsRetryExhausted(err))
	})

	t.Run("OnRetry observes each retry with the triggering error", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory, _ := flakyFactory(s, 2, 1)
		var observed []int
		task := AddRetry(factory, RetryOptions{
			MaxAttempts: 5,
			OnRetry: func(attempt int, err error) {
				observed = append(observed, attempt)
				assert.Error(t, err)
			},
		})

		_, err := task.Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, observed)
	})
}

func TestRetryLifting(t *testing.T) {
	t.Parallel()

	t.Run("re-runs the wrapped body per attempt", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		attempts := 0
		base := NewTask(s, func(ctx context.Context) (int, error) {
			attempts++
			if attempts < 3 {
				return 0, errors.New("transient failure")
			}
			return 9, nil
		})
		lifting := RetryLifting[int](RetryOptions{MaxAttempts: 5})

		v, err := LiftToTask(lifting, base).Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 9, v)
		assert.Equal(t, 3, attempts)
	})

	t.Run("lift purity", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		lifting := RetryLifting[int](RetryOptions{MaxAttempts: 3})

		lifted, err := lifting.Lift(Pure(s, 5)).Await(context.Background())
		require.NoError(t, err)
		transformed, err := lifting.Transform(Pure(s, 5)).Await(context.Background())
		require.NoError(t, err)

		assert.Equal(t, transformed, lifted)
	})
}

func TestBackoffStrategies(t *testing.T) {
	t.Parallel()

	t.Run("constant", func(t *testing.T) {
		t.Parallel()
		b := ConstantBackoff{Delay: time.Second}
		assert.Equal(t, time.Second, b.Next(1))
		assert.Equal(t, time.Second, b.Next(10))
	})

	t.Run("exponential doubles and caps", func(t *testing.T) {
		t.Parallel()
		b := ExponentialBackoff{Base: 100 * time.Millisecond, Max: 300 * time.Millisecond}
		assert.Equal(t, 100*time.Millisecond, b.Next(1))
		assert.Equal(t, 200*time.Millisecond, b.Next(2))
		assert.Equal(t, 300*time.Millisecond, b.Next(3), "capped at Max")
	})

	t.Run("linear grows by increment and caps", func(t *testing.T) {
		t.Parallel()
		b := LinearBackoff{Initial: time.Second, Increment: time.Second, Max: 3 * time.Second}
		assert.Equal(t, time.Second, b.Next(1))
		assert.Equal(t, 2*time.Second, b.Next(2))
		assert.Equal(t, 3*time.Second, b.Next(5), "capped at Max")
	})

	t.Run("backoff overrides fixed delay", func(t *testing.T) {
		t.Parallel()

		s := NewMockScheduler()
		factory, _ := flakyFactory(s, 1000, 0)
		task := AddRetry(factory, RetryOptions{
			MaxAttempts: 3,
			Delay:       time.Hour, // ignored
			Backoff:     ExponentialBackoff{Base: 10 * time.Millisecond},
		})

		_, err := task.Await(context.Background())

		require.Error(t, err)
		yields := s.Yields()
		require.Len(t, yields, 2)
		assert.Equal(t, 10*time.Millisecond, yields[0])
		assert.Equal(t, 20*time.Millisecond, yields[1])
	})
}

func TestRetryPredicates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	assert.True(t, RetryOnAny(boom))
	assert.False(t, RetryOnAny(nil))
	assert.False(t, RetryNever(boom))
	assert.True(t, RetryOnTimeout(&TimeoutError{Limit: time.Second}))
	assert.True(t, RetryOnTimeout(context.DeadlineExceeded))
	assert.False(t, RetryOnTimeout(boom))
	assert.True(t, RetryOn(boom)(boom))
	assert.False(t, RetryOn(boom)(errors.New("other")))
}
