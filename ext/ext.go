// Package ext defines the extension system for the job queue manager.
// Extensions are notified of lifecycle events (queue created, task
// started, job cleaned, etc.) and can react to them — logging, metrics,
// tracing, etc.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package ext

import (
	"context"
	"time"

	"github.com/fivegrid/jobqueue/task"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Queue lifecycle hooks
// ──────────────────────────────────────────────────

// QueueCreated is called after a per-job queue is registered.
type QueueCreated interface {
	OnQueueCreated(ctx context.Context, jobID string) error
}

// JobCleaned is called after a job's resources are reclaimed, whether by
// an explicit cleanup or by the background sweep.
type JobCleaned interface {
	OnJobCleaned(ctx context.Context, jobID string, drained int) error
}

// ──────────────────────────────────────────────────
// Task lifecycle hooks
// ──────────────────────────────────────────────────

// TaskStarted is called when a worker task begins executing.
type TaskStarted interface {
	OnTaskStarted(ctx context.Context, t *task.Task) error
}

// TaskCompleted is called after a task finishes successfully.
type TaskCompleted interface {
	OnTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) error
}

// TaskFailed is called when a task finishes with a non-cancellation error.
type TaskFailed interface {
	OnTaskFailed(ctx context.Context, t *task.Task, err error) error
}

// TaskReplaced is called when a new task is attached to a job whose
// previous task had not yet finished. The old task has already been
// asked to cancel.
type TaskReplaced interface {
	OnTaskReplaced(ctx context.Context, jobID string, old, replacement *task.Task) error
}

// ──────────────────────────────────────────────────
// Other lifecycle hooks
// ──────────────────────────────────────────────────

// SweepCompleted is called after each pass of the background sweep loop.
type SweepCompleted interface {
	OnSweepCompleted(ctx context.Context, reclaimed int, elapsed time.Duration) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
