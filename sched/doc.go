// Package sched provides the default Scheduler implementation for the effect
// package: a buffered run queue feeding a pool of lanes, with cooperative
// suspension and graceful shutdown. Each submitted task occupies a single
// lane for its whole lifted pipeline.
package sched
