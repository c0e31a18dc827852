package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/fivegrid/jobqueue/middleware"
	"github.com/fivegrid/jobqueue/task"
)

func TestChain_ExecutionOrder(t *testing.T) {
	var order []string

	mw1 := func(ctx context.Context, _ *task.Task, next middleware.Handler) error {
		order = append(order, "mw1-before")
		err := next(ctx)
		order = append(order, "mw1-after")
		return err
	}

	mw2 := func(ctx context.Context, _ *task.Task, next middleware.Handler) error {
		order = append(order, "mw2-before")
		err := next(ctx)
		order = append(order, "mw2-after")
		return err
	}

	chain := middleware.Chain(mw1, mw2)
	tk := task.New("test")
	handler := func(_ context.Context) error {
		order = append(order, "body")
		return nil
	}

	err := chain(context.Background(), tk, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"mw1-before", "mw2-before", "body", "mw2-after", "mw1-after"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(order), order)
	}
	for i, want := range expected {
		if order[i] != want {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	chain := middleware.Chain()
	called := false
	handler := func(_ context.Context) error {
		called = true
		return nil
	}

	err := chain(context.Background(), task.New("test"), handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called with empty chain")
	}
}

func TestChain_PropagatesError(t *testing.T) {
	mw := func(ctx context.Context, _ *task.Task, next middleware.Handler) error {
		return next(ctx)
	}
	chain := middleware.Chain(mw)
	want := errors.New("body error")

	err := chain(context.Background(), task.New("test"), func(_ context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRecover_CatchesPanic(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Recover(logger)
	tk := task.New("panicky")

	err := mw(context.Background(), tk, func(_ context.Context) error {
		panic("test panic")
	})
	if err == nil {
		t.Fatal("expected error from panic recovery")
	}
	want := fmt.Sprintf("panic in task for job %s: test panic", tk.JobID())
	if got := err.Error(); got != want {
		t.Errorf("unexpected error message: %q, want %q", got, want)
	}
}

func TestRecover_PassesThrough(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Recover(logger)

	called := false
	err := mw(context.Background(), task.New("normal"), func(_ context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called")
	}
}

func TestLogging_Success(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Logging(logger)

	called := false
	err := mw(context.Background(), task.New("log-test"), func(_ context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called")
	}
}

func TestLogging_Error(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Logging(logger)
	want := errors.New("fail")

	err := mw(context.Background(), task.New("log-test"), func(_ context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestTimeout_EnforcesDeadline(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Timeout(logger, 20*time.Millisecond)

	err := mw(context.Background(), task.New("slow"), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	logger := slog.Default()
	mw := middleware.Timeout(logger, 0)

	err := mw(context.Background(), task.New("free"), func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); ok {
			t.Error("expected no deadline on context")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
