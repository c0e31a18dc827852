// Package ext defines the extension system for the job queue manager.
//
// Extensions are notified of lifecycle events and can react to them —
// recording metrics, emitting webhooks, writing audit logs, etc.
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) error {
//	    log.Printf("task %s for job %s completed in %s", t.ID(), t.JobID(), elapsed)
//	    return nil
//	}
//
// # Queue Lifecycle Hooks
//
//   - [QueueCreated] — a per-job queue was registered
//   - [JobCleaned] — a job's queue, emitter and task were reclaimed
//
// # Task Lifecycle Hooks
//
//   - [TaskStarted] — a worker task began executing
//   - [TaskCompleted] — a task finished successfully
//   - [TaskFailed] — a task finished with a non-cancellation error
//   - [TaskReplaced] — a new task displaced an unfinished one
//
// # Other Hooks
//
//   - [SweepCompleted] — a background sweep pass finished
//   - [Shutdown] — the manager is shutting down gracefully
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
