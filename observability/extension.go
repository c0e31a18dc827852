package observability

import (
	"context"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/fivegrid/jobqueue/ext"
	"github.com/fivegrid/jobqueue/task"
)

// Compile-time interface checks.
var (
	_ ext.Extension      = (*MetricsExtension)(nil)
	_ ext.QueueCreated   = (*MetricsExtension)(nil)
	_ ext.JobCleaned     = (*MetricsExtension)(nil)
	_ ext.TaskStarted    = (*MetricsExtension)(nil)
	_ ext.TaskCompleted  = (*MetricsExtension)(nil)
	_ ext.TaskFailed     = (*MetricsExtension)(nil)
	_ ext.TaskReplaced   = (*MetricsExtension)(nil)
	_ ext.SweepCompleted = (*MetricsExtension)(nil)
)

// MetricsExtension records manager-wide lifecycle metrics via go-utils MetricFactory.
// Register it as an extension to automatically track queue creations, task
// outcomes, replacements, cleanups, and sweep passes.
type MetricsExtension struct {
	QueueCreated  gu.Counter
	JobCleaned    gu.Counter
	TaskStarted   gu.Counter
	TaskCompleted gu.Counter
	TaskFailed    gu.Counter
	TaskReplaced  gu.Counter
	SweepPasses   gu.Counter
}

// NewMetricsExtension creates a MetricsExtension using a default metrics collector.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithFactory(gu.NewMetricsCollector("jobqueue/observability"))
}

// NewMetricsExtensionWithFactory creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtensionWithFactory(factory gu.MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		QueueCreated:  factory.Counter("jobqueue.queue.created"),
		JobCleaned:    factory.Counter("jobqueue.job.cleaned"),
		TaskStarted:   factory.Counter("jobqueue.task.started"),
		TaskCompleted: factory.Counter("jobqueue.task.completed"),
		TaskFailed:    factory.Counter("jobqueue.task.failed"),
		TaskReplaced:  factory.Counter("jobqueue.task.replaced"),
		SweepPasses:   factory.Counter("jobqueue.sweep.passes"),
	}
}

// Name implements ext.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// ── Queue lifecycle hooks ───────────────────────────

// OnQueueCreated implements ext.QueueCreated.
func (m *MetricsExtension) OnQueueCreated(_ context.Context, _ string) error {
	m.QueueCreated.Inc()
	return nil
}

// OnJobCleaned implements ext.JobCleaned.
func (m *MetricsExtension) OnJobCleaned(_ context.Context, _ string, _ int) error {
	m.JobCleaned.Inc()
	return nil
}

// ── Task lifecycle hooks ────────────────────────────

// OnTaskStarted implements ext.TaskStarted.
func (m *MetricsExtension) OnTaskStarted(_ context.Context, _ *task.Task) error {
	m.TaskStarted.Inc()
	return nil
}

// OnTaskCompleted implements ext.TaskCompleted.
func (m *MetricsExtension) OnTaskCompleted(_ context.Context, _ *task.Task, _ time.Duration) error {
	m.TaskCompleted.Inc()
	return nil
}

// OnTaskFailed implements ext.TaskFailed.
func (m *MetricsExtension) OnTaskFailed(_ context.Context, _ *task.Task, _ error) error {
	m.TaskFailed.Inc()
	return nil
}

// OnTaskReplaced implements ext.TaskReplaced.
func (m *MetricsExtension) OnTaskReplaced(_ context.Context, _ string, _, _ *task.Task) error {
	m.TaskReplaced.Inc()
	return nil
}

// ── Sweep lifecycle hooks ───────────────────────────

// OnSweepCompleted implements ext.SweepCompleted.
func (m *MetricsExtension) OnSweepCompleted(_ context.Context, _ int, _ time.Duration) error {
	m.SweepPasses.Inc()
	return nil
}
