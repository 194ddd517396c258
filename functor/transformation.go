package functor

import "context"

// Transformation is a functor-like pairing of an object map and an arrow map
// between two task categories. The category tags are purely descriptive. A
// well-formed transformation preserves identity and composition; those laws
// are checked observationally by the test suite rather than asserted at
// construction.
type Transformation[T any] struct {
	// Source and Target name the categories the transformation maps between.
	Source string
	Target string

	// Obj maps objects.
	Obj func(v T) T

	// Morph maps arrows.
	Morph func(a Arrow[T]) Arrow[T]
}

// IdentityFunctor returns the transformation that leaves objects and arrows
// untouched.
func IdentityFunctor[T any]() Transformation[T] {
	return Transformation[T]{
		Source: "task",
		Target: "task",
		Obj:    func(v T) T { return v },
		Morph:  func(a Arrow[T]) Arrow[T] { return a },
	}
}

// TaskFunctor builds a transformation from a plain function: objects map
// through f, and every arrow's successful result is wrapped with f. Errors
// pass through untouched.
func TaskFunctor[T any](f func(T) T) Transformation[T] {
	return Transformation[T]{
		Source: "task",
		Target: "task",
		Obj:    f,
		Morph: func(a Arrow[T]) Arrow[T] {
			return func(ctx context.Context, v T) (T, error) {
				out, err := a(ctx, v)
				if err != nil {
					var zero T
					return zero, err
				}
				return f(out), nil
			}
		},
	}
}

// ComposeFunctors produces the transformation applying g first, then f. Both
// the object map and the arrow map are the corresponding function
// compositions; the operation is associative.
func ComposeFunctors[T any](f, g Transformation[T]) Transformation[T] {
	return Transformation[T]{
		Source: g.Source,
		Target: f.Target,
		Obj: func(v T) T {
			return f.Obj(g.Obj(v))
		},
		Morph: func(a Arrow[T]) Arrow[T] {
			return f.Morph(g.Morph(a))
		},
	}
}

// ApplyFunctor maps the arrow through the transformation.
func ApplyFunctor[T any](t Transformation[T], a Arrow[T]) Arrow[T] {
	return t.Morph(a)
}
