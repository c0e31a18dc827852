package task_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fivegrid/jobqueue/task"
)

func TestStartRunsBody(t *testing.T) {
	tk := task.New("job-1")
	if tk.JobID() != "job-1" {
		t.Errorf("JobID() = %q, want %q", tk.JobID(), "job-1")
	}
	if !strings.HasPrefix(tk.ID().String(), "task_") {
		t.Errorf("task ID = %q, want task_ prefix", tk.ID().String())
	}
	if tk.Finished() {
		t.Error("task finished before Start")
	}

	ran := make(chan struct{})
	tk.Start(func(_ context.Context) error {
		close(ran)
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for body to run")
	}

	if err := tk.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v, want nil", err)
	}
	if !tk.Finished() {
		t.Error("task not finished after Wait")
	}
	if tk.Cancelled() {
		t.Error("clean finish reported as cancelled")
	}
}

func TestCancelIsRequestNotGuarantee(t *testing.T) {
	tk := task.New("job-2")

	entered := make(chan struct{})
	release := make(chan struct{})
	tk.Start(func(ctx context.Context) error {
		close(entered)
		<-release // ignore cancellation until released
		return ctx.Err()
	})

	<-entered
	tk.Cancel()

	// The body has not observed cancellation yet.
	if tk.Finished() {
		t.Fatal("task reported finished while body still running")
	}

	close(release)

	if err := tk.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
	if !tk.Cancelled() {
		t.Error("expected Cancelled() after cancellation was observed")
	}
}

func TestWaitRespectsCallerContext(t *testing.T) {
	tk := task.New("job-3")

	block := make(chan struct{})
	tk.Start(func(_ context.Context) error {
		<-block
		return nil
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := tk.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() = %v, want context.DeadlineExceeded", err)
	}
}

func TestErrCapturesBodyFailure(t *testing.T) {
	boom := errors.New("boom")
	tk := task.New("job-4")
	tk.Start(func(_ context.Context) error { return boom })

	if err := tk.Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Wait() = %v, want %v", err, boom)
	}
	if tk.Cancelled() {
		t.Error("failure reported as cancellation")
	}
}

func TestCancelBeforeStartIsNoop(t *testing.T) {
	tk := task.New("job-5")
	tk.Cancel() // must not panic

	tk.Start(func(_ context.Context) error { return nil })
	if err := tk.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v, want nil", err)
	}
}
