// Package functor provides the transformation machinery for composed lifting
// pipelines: arrows between task-producing stages, functor-like
// transformations over those arrows, and an adjunction verifier that checks
// the two triangle identities observationally. It is the correctness oracle
// for the liftings in the effect package rather than a general category
// theory law checker.
package functor
