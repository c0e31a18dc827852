package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/fivegrid/jobqueue/task"
)

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("worker task panicked",
					slog.String("job_id", t.JobID()),
					slog.String("task_id", t.ID().String()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in task for job %s: %v", t.JobID(), r)
			}
		}()
		return next(ctx)
	}
}
