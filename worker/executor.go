// Package worker provides the task execution engine — an Executor that
// spawns one worker task per job, running the job body through middleware
// and emitting lifecycle events as it finishes.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fivegrid/jobqueue/ext"
	"github.com/fivegrid/jobqueue/middleware"
	"github.com/fivegrid/jobqueue/task"
)

// Executor spawns worker tasks. Each task runs its body through the
// configured middleware chain, then the Executor emits the terminal
// lifecycle event (completed, failed) and logs non-cancellation failures.
type Executor struct {
	extensions *ext.Registry
	mw         middleware.Middleware
	logger     *slog.Logger
}

// NewExecutor creates an Executor with the given dependencies.
func NewExecutor(extensions *ext.Registry, logger *slog.Logger, mws ...middleware.Middleware) *Executor {
	return &Executor{
		extensions: extensions,
		mw:         middleware.Chain(mws...),
		logger:     logger,
	}
}

// Spawn creates a task for the job and starts it immediately.
// On start: emits TaskStarted from the task's own goroutine, so hooks
// never run on the caller's goroutine or under its locks.
// On success: emits TaskCompleted.
// On cancellation: logs at debug level; cancellation is routine, not a failure.
// On any other error: emits TaskFailed.
func (e *Executor) Spawn(jobID string, body task.Body) *task.Task {
	t := task.New(jobID)

	t.Start(func(ctx context.Context) error {
		e.extensions.EmitTaskStarted(ctx, t)

		start := time.Now()
		err := e.mw(ctx, t, middleware.Handler(body))
		elapsed := time.Since(start)

		switch {
		case err == nil:
			e.extensions.EmitTaskCompleted(ctx, t, elapsed)
		case errors.Is(err, context.Canceled):
			e.logger.Debug("task cancelled",
				slog.String("job_id", jobID),
				slog.String("task_id", t.ID().String()),
				slog.Duration("elapsed", elapsed),
			)
		default:
			e.extensions.EmitTaskFailed(ctx, t, err)
			e.logger.Error("task failed",
				slog.String("job_id", jobID),
				slog.String("task_id", t.ID().String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		}
		return err
	})

	return t
}
