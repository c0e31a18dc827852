package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/fivegrid/jobqueue/task"
)

// Timeout returns middleware that enforces an execution deadline on
// every task body it wraps. A non-positive duration disables the
// deadline and the middleware becomes a pass-through; no deadline is
// ever applied unless this middleware is installed.
func Timeout(logger *slog.Logger, d time.Duration) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		if d > 0 {
			logger.Debug("task deadline set",
				slog.String("task_id", t.ID().String()),
				slog.Duration("timeout", d),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
