// Package effect provides a deferred, cancellable Task abstraction and a set
// of composable effect liftings — state threading, timeouts, bounded retry,
// and structured logging — that wrap a task with cross-cutting behavior
// without modifying its body. Tasks are executed by a Scheduler capability;
// this package never runs work itself.
package effect
