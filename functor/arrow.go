package functor

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Arrow is a composable function between task-producing stages. Arrows are
// compared observationally: two arrows are equal when they produce equal
// results on the same inputs.
type Arrow[T any] func(ctx context.Context, v T) (T, error)

// Identity returns the arrow that passes its input through unchanged.
func Identity[T any]() Arrow[T] {
	return func(_ context.Context, v T) (T, error) {
		return v, nil
	}
}

// ComposeArrows runs f, then feeds its output to g. An error from f
// short-circuits g.
func ComposeArrows[T any](f, g Arrow[T]) Arrow[T] {
	return func(ctx context.Context, v T) (T, error) {
		out, err := f(ctx, v)
		if err != nil {
			var zero T
			return zero, err
		}
		return g(ctx, out)
	}
}

// ArrowsEquivalent reports whether f and g agree observationally on every
// probe input. When they disagree, the returned string describes the first
// differing probe.
func ArrowsEquivalent[T any](ctx context.Context, f, g Arrow[T], probes []T) (bool, string) {
	for _, p := range probes {
		fv, ferr := f(ctx, p)
		gv, gerr := g(ctx, p)
		if (ferr == nil) != (gerr == nil) {
			return false, fmt.Sprintf("probe %v: errors differ: %v vs %v", p, ferr, gerr)
		}
		if ferr != nil {
			continue
		}
		if diff := cmp.Diff(fv, gv); diff != "" {
			return false, fmt.Sprintf("probe %v: values differ (-first +second):\n%s", p, diff)
		}
	}
	return true, ""
}
