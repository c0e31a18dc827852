package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivegrid/jobqueue/task"
)

// tracerName is the instrumentation scope name for jobqueue tracing.
const tracerName = "github.com/fivegrid/jobqueue"

// Tracing returns middleware that wraps task execution in an OpenTelemetry
// span. If no TracerProvider is configured globally, the default noop
// tracer is used and this middleware becomes a pass-through with zero
// overhead.
//
// Span attributes include: jobqueue.job.id and jobqueue.task.id.
// On error, the span status is set to codes.Error with the error message;
// a cancellation outcome is recorded as Ok.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		ctx, span := tracer.Start(ctx, "jobqueue.task.execute",
			trace.WithAttributes(
				attribute.String("jobqueue.job.id", t.JobID()),
				attribute.String("jobqueue.task.id", t.ID().String()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		switch {
		case err == nil || errors.Is(err, context.Canceled):
			span.SetStatus(codes.Ok, "")
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		return err
	}
}
