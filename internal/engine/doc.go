// Package engine implements the asynchronous proof execution engine: an
// unbounded FIFO work queue drained by a fixed pool of workers, each of
// which runs one proof backend invocation at a time and records the outcome
// in the status store.
package engine
