package observability_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/fivegrid/jobqueue/ext"
	"github.com/fivegrid/jobqueue/observability"
	"github.com/fivegrid/jobqueue/task"
)

func newTestExtension() *observability.MetricsExtension {
	return observability.NewMetricsExtensionWithFactory(gu.NewMetricsCollector("test"))
}

func TestMetricsExtension_Name(t *testing.T) {
	e := newTestExtension()
	if e.Name() != "observability-metrics" {
		t.Errorf("expected name %q, got %q", "observability-metrics", e.Name())
	}
}

func TestMetricsExtension_QueueCreated(t *testing.T) {
	e := newTestExtension()
	if err := e.OnQueueCreated(context.Background(), "job-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.QueueCreated.Value() != 1 {
		t.Errorf("QueueCreated: want 1, got %v", e.QueueCreated.Value())
	}
}

func TestMetricsExtension_JobCleaned(t *testing.T) {
	e := newTestExtension()
	if err := e.OnJobCleaned(context.Background(), "job-a", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.JobCleaned.Value() != 1 {
		t.Errorf("JobCleaned: want 1, got %v", e.JobCleaned.Value())
	}
}

func TestMetricsExtension_TaskStarted(t *testing.T) {
	e := newTestExtension()
	if err := e.OnTaskStarted(context.Background(), task.New("job-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TaskStarted.Value() != 1 {
		t.Errorf("TaskStarted: want 1, got %v", e.TaskStarted.Value())
	}
}

func TestMetricsExtension_TaskCompleted(t *testing.T) {
	e := newTestExtension()
	if err := e.OnTaskCompleted(context.Background(), task.New("job-a"), 100*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TaskCompleted.Value() != 1 {
		t.Errorf("TaskCompleted: want 1, got %v", e.TaskCompleted.Value())
	}
}

func TestMetricsExtension_TaskFailed(t *testing.T) {
	e := newTestExtension()
	if err := e.OnTaskFailed(context.Background(), task.New("job-a"), errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TaskFailed.Value() != 1 {
		t.Errorf("TaskFailed: want 1, got %v", e.TaskFailed.Value())
	}
}

func TestMetricsExtension_TaskReplaced(t *testing.T) {
	e := newTestExtension()
	if err := e.OnTaskReplaced(context.Background(), "job-a", task.New("job-a"), task.New("job-a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TaskReplaced.Value() != 1 {
		t.Errorf("TaskReplaced: want 1, got %v", e.TaskReplaced.Value())
	}
}

func TestMetricsExtension_SweepCompleted(t *testing.T) {
	e := newTestExtension()
	if err := e.OnSweepCompleted(context.Background(), 2, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.SweepPasses.Value() != 1 {
		t.Errorf("SweepPasses: want 1, got %v", e.SweepPasses.Value())
	}
}

func TestMetricsExtension_ViaRegistry(t *testing.T) {
	e := newTestExtension()
	logger := slog.Default()

	reg := ext.NewRegistry(logger)
	reg.Register(e)

	ctx := context.Background()
	tk := task.New("job-a")

	reg.EmitQueueCreated(ctx, "job-a")
	reg.EmitTaskStarted(ctx, tk)
	reg.EmitTaskCompleted(ctx, tk, 50*time.Millisecond)
	reg.EmitTaskFailed(ctx, tk, errors.New("fail"))
	reg.EmitTaskReplaced(ctx, "job-a", tk, task.New("job-a"))
	reg.EmitJobCleaned(ctx, "job-a", 2)
	reg.EmitSweepCompleted(ctx, 1, time.Millisecond)

	checks := []struct {
		name  string
		value float64
	}{
		{"QueueCreated", e.QueueCreated.Value()},
		{"TaskStarted", e.TaskStarted.Value()},
		{"TaskCompleted", e.TaskCompleted.Value()},
		{"TaskFailed", e.TaskFailed.Value()},
		{"TaskReplaced", e.TaskReplaced.Value()},
		{"JobCleaned", e.JobCleaned.Value()},
		{"SweepPasses", e.SweepPasses.Value()},
	}

	for _, c := range checks {
		if c.value != 1 {
			t.Errorf("%s: want 1, got %v", c.name, c.value)
		}
	}
}
