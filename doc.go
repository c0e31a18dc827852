// Package jobqueue manages per-job message queues and their worker tasks.
// Each logical job owns an isolated unbounded FIFO queue, an event emitter
// bound to that queue, and at most one running worker task. The Manager
// guarantees deterministic, leak-free teardown of all three when a job
// finishes, is replaced, or the manager shuts down.
//
// # Quick Start
//
//	m, err := jobqueue.New(
//	    jobqueue.WithLogger(logger),
//	    jobqueue.WithSweepInterval(time.Minute),
//	)
//	if err != nil { ... }
//	if err := m.Start(ctx); err != nil { ... }
//	defer m.Stop(ctx)
//
//	q, events, err := m.CreateQueue("job123")
//	if err != nil { ... }
//	err = m.StartJob("job123", func(ctx context.Context) error {
//	    events.Message("working")
//	    return nil
//	})
//
// # Lifecycle
//
// A background sweep periodically reclaims jobs whose worker has finished
// or been cancelled without an explicit CleanupJob call. Replacing a
// job's task via StartJob cancels the previous task without waiting for
// it; CleanupJob cancels and waits, then drains the queue before
// removing the job. Replacement is fast, teardown is certain.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package jobqueue
