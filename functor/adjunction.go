package functor

import (
	"context"
	"fmt"
)

// Adjunction pairs two transformations with unit and counit natural
// transformations. It is well formed when the two triangle identities hold;
// VerifyAdjunction checks that over sampled objects rather than enforcing it
// statically.
type Adjunction[T any] struct {
	Left  Transformation[T]
	Right Transformation[T]

	// Unit and Counit produce the component arrow at a given object.
	Unit   func(v T) Arrow[T]
	Counit func(v T) Arrow[T]
}

// TaskAdjunction assembles an adjunction from its parts.
func TaskAdjunction[T any](left, right Transformation[T], unit, counit func(v T) Arrow[T]) Adjunction[T] {
	return Adjunction[T]{Left: left, Right: right, Unit: unit, Counit: counit}
}

// Report is the outcome of VerifyAdjunction. On failure it identifies the
// triangle, the sample object, and the observed difference.
type Report[T any] struct {
	OK       bool
	Triangle string // "left" or "right", empty when OK
	Sample   T
	Diff     string
}

func (r Report[T]) String() string {
	if r.OK {
		return "adjunction verified"
	}
	return fmt.Sprintf("%s triangle failed at sample %v: %s", r.Triangle, r.Sample, r.Diff)
}

// VerifyAdjunction checks the two triangle identities for every sample
// object:
//
//	left:  Left.Morph(Unit(a)) ; Counit(Left.Obj(a))   == identity
//	right: Unit(Right.Obj(a))  ; Right.Morph(Counit(a)) == identity
//
// Arrow equality is observational: both sides run on every probe input and
// the results are compared. Verification stops at the first failing sample
// and reports which triangle broke.
func VerifyAdjunction[T any](ctx context.Context, adj Adjunction[T], samples, probes []T) Report[T] {
	for _, a := range samples {
		leftSide := ComposeArrows(adj.Left.Morph(adj.Unit(a)), adj.Counit(adj.Left.Obj(a)))
		if ok, diff := ArrowsEquivalent(ctx, leftSide, Identity[T](), probes); !ok {
			return Report[T]{Triangle: "left", Sample: a, Diff: diff}
		}

		rightSide := ComposeArrows(adj.Unit(adj.Right.Obj(a)), adj.Right.Morph(adj.Counit(a)))
		if ok, diff := ArrowsEquivalent(ctx, rightSide, Identity[T](), probes); !ok {
			return Report[T]{Triangle: "right", Sample: a, Diff: diff}
		}
	}
	return Report[T]{OK: true}
}
