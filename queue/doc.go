// Package queue provides the unbounded FIFO message queue that backs
// each job slot.
//
// A [Queue] holds opaque messages. Producers push without blocking
// (the queue grows as needed); the worker consumes with [Queue.Pop],
// which blocks until a message arrives or the context is cancelled.
// Teardown code drains with [Queue.TryPop], treating "queue empty" as
// success rather than error, so a drain can race with a producer that
// is still unwinding.
//
//	q := queue.New()
//	q.Push(msg)               // never blocks
//	v, err := q.Pop(ctx)      // blocks until a message or ctx.Done()
//	v, ok := q.TryPop()       // non-blocking, ok=false when empty
//
// Queues carry no priority ordering, no bounds, and no fairness between
// producers. They live exactly as long as the job slot that owns them.
package queue
