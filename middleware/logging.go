package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fivegrid/jobqueue/task"
)

// Logging returns middleware that logs task start and completion.
// A cancellation outcome is logged as completion, not failure.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		logger.Info("task started",
			slog.String("job_id", t.JobID()),
			slog.String("task_id", t.ID().String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			logger.Info("task completed",
				slog.String("job_id", t.JobID()),
				slog.String("task_id", t.ID().String()),
				slog.Duration("elapsed", elapsed),
			)
		case errors.Is(err, context.Canceled):
			logger.Info("task cancelled",
				slog.String("job_id", t.JobID()),
				slog.String("task_id", t.ID().String()),
				slog.Duration("elapsed", elapsed),
			)
		default:
			logger.Error("task failed",
				slog.String("job_id", t.JobID()),
				slog.String("task_id", t.ID().String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		}

		return err
	}
}
