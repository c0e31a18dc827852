package ext

import (
	"context"
	"log/slog"
	"time"

	"github.com/fivegrid/jobqueue/task"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type queueCreatedEntry struct {
	name string
	hook QueueCreated
}

type jobCleanedEntry struct {
	name string
	hook JobCleaned
}

type taskStartedEntry struct {
	name string
	hook TaskStarted
}

type taskCompletedEntry struct {
	name string
	hook TaskCompleted
}

type taskFailedEntry struct {
	name string
	hook TaskFailed
}

type taskReplacedEntry struct {
	name string
	hook TaskReplaced
}

type sweepCompletedEntry struct {
	name string
	hook SweepCompleted
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	queueCreated   []queueCreatedEntry
	jobCleaned     []jobCleanedEntry
	taskStarted    []taskStartedEntry
	taskCompleted  []taskCompletedEntry
	taskFailed     []taskFailedEntry
	taskReplaced   []taskReplacedEntry
	sweepCompleted []sweepCompletedEntry
	shutdown       []shutdownEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(QueueCreated); ok {
		r.queueCreated = append(r.queueCreated, queueCreatedEntry{name, h})
	}
	if h, ok := e.(JobCleaned); ok {
		r.jobCleaned = append(r.jobCleaned, jobCleanedEntry{name, h})
	}
	if h, ok := e.(TaskStarted); ok {
		r.taskStarted = append(r.taskStarted, taskStartedEntry{name, h})
	}
	if h, ok := e.(TaskCompleted); ok {
		r.taskCompleted = append(r.taskCompleted, taskCompletedEntry{name, h})
	}
	if h, ok := e.(TaskFailed); ok {
		r.taskFailed = append(r.taskFailed, taskFailedEntry{name, h})
	}
	if h, ok := e.(TaskReplaced); ok {
		r.taskReplaced = append(r.taskReplaced, taskReplacedEntry{name, h})
	}
	if h, ok := e.(SweepCompleted); ok {
		r.sweepCompleted = append(r.sweepCompleted, sweepCompletedEntry{name, h})
	}
	if h, ok := e.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitQueueCreated notifies all extensions that implement QueueCreated.
func (r *Registry) EmitQueueCreated(ctx context.Context, jobID string) {
	for _, e := range r.queueCreated {
		if err := e.hook.OnQueueCreated(ctx, jobID); err != nil {
			r.logHookError("OnQueueCreated", e.name, err)
		}
	}
}

// EmitJobCleaned notifies all extensions that implement JobCleaned.
func (r *Registry) EmitJobCleaned(ctx context.Context, jobID string, drained int) {
	for _, e := range r.jobCleaned {
		if err := e.hook.OnJobCleaned(ctx, jobID, drained); err != nil {
			r.logHookError("OnJobCleaned", e.name, err)
		}
	}
}

// EmitTaskStarted notifies all extensions that implement TaskStarted.
func (r *Registry) EmitTaskStarted(ctx context.Context, t *task.Task) {
	for _, e := range r.taskStarted {
		if err := e.hook.OnTaskStarted(ctx, t); err != nil {
			r.logHookError("OnTaskStarted", e.name, err)
		}
	}
}

// EmitTaskCompleted notifies all extensions that implement TaskCompleted.
func (r *Registry) EmitTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) {
	for _, e := range r.taskCompleted {
		if err := e.hook.OnTaskCompleted(ctx, t, elapsed); err != nil {
			r.logHookError("OnTaskCompleted", e.name, err)
		}
	}
}

// EmitTaskFailed notifies all extensions that implement TaskFailed.
func (r *Registry) EmitTaskFailed(ctx context.Context, t *task.Task, taskErr error) {
	for _, e := range r.taskFailed {
		if err := e.hook.OnTaskFailed(ctx, t, taskErr); err != nil {
			r.logHookError("OnTaskFailed", e.name, err)
		}
	}
}

// EmitTaskReplaced notifies all extensions that implement TaskReplaced.
func (r *Registry) EmitTaskReplaced(ctx context.Context, jobID string, old, replacement *task.Task) {
	for _, e := range r.taskReplaced {
		if err := e.hook.OnTaskReplaced(ctx, jobID, old, replacement); err != nil {
			r.logHookError("OnTaskReplaced", e.name, err)
		}
	}
}

// EmitSweepCompleted notifies all extensions that implement SweepCompleted.
func (r *Registry) EmitSweepCompleted(ctx context.Context, reclaimed int, elapsed time.Duration) {
	for _, e := range r.sweepCompleted {
		if err := e.hook.OnSweepCompleted(ctx, reclaimed, elapsed); err != nil {
			r.logHookError("OnSweepCompleted", e.name, err)
		}
	}
}

// EmitShutdown notifies all extensions that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the manager.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
