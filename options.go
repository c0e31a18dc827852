package jobqueue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivegrid/jobqueue/ext"
	"github.com/fivegrid/jobqueue/middleware"
)

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets the structured logger for the manager.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) error {
		m.logger = l
		return nil
	}
}

// WithSweepInterval sets how often the background sweep scans for jobs
// whose worker task has finished. Ignored when a sweep schedule is set.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) error {
		if d <= 0 {
			return fmt.Errorf("jobqueue: sweep interval must be positive, got %s", d)
		}
		m.config.SweepInterval = d
		return nil
	}
}

// WithSweepSchedule sets a cron expression driving the background sweep
// instead of a fixed interval. Standard 5-field expressions and
// descriptors such as "@every 30s" or "@hourly" are accepted.
func WithSweepSchedule(expr string) Option {
	return func(m *Manager) error {
		sched, err := cron.ParseStandard(expr)
		if err != nil {
			return fmt.Errorf("jobqueue: invalid sweep schedule %q: %w", expr, err)
		}
		m.config.SweepSchedule = expr
		m.schedule = sched
		return nil
	}
}

// WithExtension registers a lifecycle extension with the manager.
func WithExtension(e ext.Extension) Option {
	return func(m *Manager) error {
		m.exts = append(m.exts, e)
		return nil
	}
}

// WithMiddleware appends middleware to the worker task chain, after the
// built-in recover, tracing, metrics, and logging middleware.
func WithMiddleware(mw middleware.Middleware) Option {
	return func(m *Manager) error {
		m.mws = append(m.mws, mw)
		return nil
	}
}

// WithTracerProvider sets a custom OTel TracerProvider. When set, the
// tracing middleware uses this provider instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) error {
		m.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider sets a custom OTel MeterProvider. When set, the
// metrics middleware uses this provider instead of the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Manager) error {
		m.meterProvider = mp
		return nil
	}
}
