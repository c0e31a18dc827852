// Package observability provides a metrics extension for the job queue
// manager. The MetricsExtension implements lifecycle hooks to record
// manager-wide counters for queue creation, task outcomes, replacements,
// cleanups, and sweep passes.
//
// For per-execution tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
