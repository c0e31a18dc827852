// Package task defines the handle type for a job's asynchronous worker.
// A Task wraps one goroutine with cancellation, completion signalling,
// and error capture. Cancellation is a request, not a guarantee: the
// body decides how quickly it observes its context.
package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fivegrid/jobqueue/id"
)

// Body is the function a worker task runs. It should return promptly
// once its context is cancelled, returning ctx.Err().
type Body func(ctx context.Context) error

// Task is the handle for one spawned worker goroutine.
type Task struct {
	id     id.TaskID
	jobID  string
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	err       error
	startedAt time.Time
}

// New creates a Task bound to the given job ID. The task is inert until
// Start is called.
func New(jobID string) *Task {
	return &Task{
		id:    id.NewTaskID(),
		jobID: jobID,
		done:  make(chan struct{}),
	}
}

// ID returns the task's unique identifier.
func (t *Task) ID() id.TaskID { return t.id }

// JobID returns the job this task belongs to.
func (t *Task) JobID() string { return t.jobID }

// StartedAt returns when Start was called, or the zero time if the task
// has not started.
func (t *Task) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startedAt
}

// Start launches the task goroutine running body. It must be called at
// most once.
func (t *Task) Start(body Body) {
	ctx, cancel := context.WithCancel(context.Background())

	t.mu.Lock()
	t.cancel = cancel
	t.startedAt = time.Now().UTC()
	t.mu.Unlock()

	go func() {
		err := body(ctx)

		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		cancel()
		close(t.done)
	}()
}

// Cancel requests cancellation of the task. It returns immediately
// without waiting for the body to unwind. Cancelling a finished or
// never-started task is a no-op.
func (t *Task) Cancel() {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Done returns a channel that is closed when the task's body has
// returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Finished reports whether the task's body has returned.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the task's body has returned or ctx is cancelled.
// It returns the task's error; a cancellation outcome is reported via
// Cancelled, not as a Wait failure.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the error the body returned, or nil if the task has not
// finished or finished cleanly.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Cancelled reports whether the task finished by observing cancellation.
func (t *Task) Cancelled() bool {
	if !t.Finished() {
		return false
	}
	return errors.Is(t.Err(), context.Canceled)
}
