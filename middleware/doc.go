// Package middleware provides composable middleware for worker task
// execution.
//
// A [Middleware] is a function that wraps a task body. Middleware are
// composed into a chain using [Chain] and applied each time a task is
// spawned. They are applied right-to-left: the first middleware in the
// slice is the outermost wrapper.
//
//	// logging → recover → body
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging] — logs task start, duration, and outcome at each execution
//   - [Recover] — catches panics and converts them to errors
//   - [Timeout] — cancels the task context after a configured duration (opt-in;
//     tasks carry no deadline by default)
//   - [Tracing] — wraps execution in an OpenTelemetry span
//   - [Metrics] — records per-task duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, t *task.Task, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting.
package middleware
