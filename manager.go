package jobqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivegrid/jobqueue/event"
	"github.com/fivegrid/jobqueue/ext"
	mw "github.com/fivegrid/jobqueue/middleware"
	"github.com/fivegrid/jobqueue/observability"
	"github.com/fivegrid/jobqueue/queue"
	"github.com/fivegrid/jobqueue/task"
	"github.com/fivegrid/jobqueue/worker"
)

// slot bundles the resources owned by one job: its queue, the emitter
// bound to that queue, and the current worker task (nil until StartJob).
type slot struct {
	queue   *queue.Queue
	emitter *event.Emitter
	task    *task.Task
}

// Manager owns per-job queues and their worker tasks. Each registered
// job gets an isolated unbounded FIFO queue, an event emitter, and at
// most one running worker task. A background sweep reclaims jobs whose
// task has finished without an explicit CleanupJob call.
//
// A Manager is closed until Start is called and after Stop returns.
type Manager struct {
	config     Config
	logger     *slog.Logger
	extensions *ext.Registry
	executor   *worker.Executor
	schedule   cron.Schedule

	// Staged during option application, consumed by New.
	exts []ext.Extension
	mws  []mw.Middleware

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	mu       sync.Mutex
	slots    map[string]*slot
	closed   bool
	stopCh   chan struct{}
	sweepErr error

	wg sync.WaitGroup
}

// New creates a Manager with the given options. The manager starts
// closed; call Start before creating queues.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.Default(),
		slots:  make(map[string]*slot),
		closed: true,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.extensions = ext.NewRegistry(m.logger)
	m.extensions.Register(observability.NewMetricsExtension())
	for _, e := range m.exts {
		m.extensions.Register(e)
	}
	m.exts = nil

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware
	if m.tracerProvider != nil {
		tracingMw = mw.TracingWithTracer(m.tracerProvider.Tracer("github.com/fivegrid/jobqueue"))
	} else {
		tracingMw = mw.Tracing()
	}

	// Build metrics middleware (custom provider or global).
	var metricsMw mw.Middleware
	if m.meterProvider != nil {
		metricsMw = mw.MetricsWithMeter(m.meterProvider.Meter("github.com/fivegrid/jobqueue"))
	} else {
		metricsMw = mw.Metrics()
	}

	// Default chain: recover → tracing → metrics → logging, then user
	// middleware innermost.
	allMws := make([]mw.Middleware, 0, 4+len(m.mws))
	allMws = append(allMws,
		mw.Recover(m.logger),
		tracingMw,
		metricsMw,
		mw.Logging(m.logger),
	)
	allMws = append(allMws, m.mws...)
	m.mws = nil

	m.executor = worker.NewExecutor(m.extensions, m.logger, allMws...)
	return m, nil
}

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Config returns a copy of the manager's configuration.
func (m *Manager) Config() Config { return m.config }

// Extensions returns the extension registry.
func (m *Manager) Extensions() *ext.Registry { return m.extensions }

// Start opens the manager and launches the background sweep.
// Starting an already-started manager is a no-op.
func (m *Manager) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		return nil
	}
	m.closed = false
	m.sweepErr = nil
	m.stopCh = make(chan struct{})

	m.wg.Add(1)
	go m.sweepLoop(m.stopCh)

	m.logger.Info("job queue manager started",
		slog.Duration("sweep_interval", m.config.SweepInterval),
		slog.String("sweep_schedule", m.config.SweepSchedule),
	)
	return nil
}

// Stop closes the manager: it halts the background sweep, cleans up
// every registered job, and notifies Shutdown extensions. If a sweep
// pass failed fatally while the manager was running, Stop returns that
// error. Stopping a never-started or already-stopped manager is a no-op.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if m.closed && m.stopCh == nil {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	stopCh := m.stopCh
	m.stopCh = nil
	m.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	m.wg.Wait()

	for _, jobID := range m.jobIDs() {
		if err := m.CleanupJob(ctx, jobID); err != nil {
			m.logger.Error("cleanup during shutdown failed",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
		}
	}

	m.extensions.EmitShutdown(ctx)
	m.logger.Info("job queue manager stopped")

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepErr
}

// CreateQueue registers a new job and returns its queue and emitter.
// It returns ErrDuplicateJob if a queue already exists for the job ID,
// and ErrServiceClosed if the manager has not been started. The
// duplicate check runs first: re-registering a known job reports the
// duplicate even on a closed manager.
func (m *Manager) CreateQueue(jobID string) (*queue.Queue, *event.Emitter, error) {
	m.mu.Lock()
	if _, ok := m.slots[jobID]; ok {
		m.mu.Unlock()
		return nil, nil, fmt.Errorf("create queue for job %q: %w", jobID, ErrDuplicateJob)
	}
	if m.closed {
		m.mu.Unlock()
		return nil, nil, ErrServiceClosed
	}

	q := queue.New()
	em := event.NewEmitter(q)
	m.slots[jobID] = &slot{queue: q, emitter: em}
	m.mu.Unlock()

	m.extensions.EmitQueueCreated(context.Background(), jobID)
	m.logger.Debug("queue created", slog.String("job_id", jobID))
	return q, em, nil
}

// StartJob spawns a worker task running body for the given job. If the
// job already has an unfinished task, that task is asked to cancel and
// the new one takes its place immediately; StartJob does not wait for
// the old task to unwind. It returns ErrUnknownJob if no queue exists
// for the job ID.
func (m *Manager) StartJob(jobID string, body task.Body) error {
	m.mu.Lock()
	s, ok := m.slots[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("start job %q: %w", jobID, ErrUnknownJob)
	}

	old := s.task
	replaced := old != nil && !old.Finished()
	if replaced {
		old.Cancel()
	}

	t := m.executor.Spawn(jobID, body)
	s.task = t
	m.mu.Unlock()

	if replaced {
		m.extensions.EmitTaskReplaced(context.Background(), jobID, old, t)
		m.logger.Info("task replaced",
			slog.String("job_id", jobID),
			slog.String("old_task_id", old.ID().String()),
			slog.String("new_task_id", t.ID().String()),
		)
	}
	return nil
}

// GetQueueData returns the queue, emitter, and current task for a job.
// The task is nil until StartJob has been called. It returns
// ErrUnknownJob if no queue exists for the job ID.
func (m *Manager) GetQueueData(jobID string) (*queue.Queue, *event.Emitter, *task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[jobID]
	if !ok {
		return nil, nil, nil, fmt.Errorf("get queue data for job %q: %w", jobID, ErrUnknownJob)
	}
	return s.queue, s.emitter, s.task, nil
}

// CleanupJob tears down a job's resources: it cancels the worker task
// and waits for it to unwind, drains the queue, and removes the job.
// Cleaning up an unknown job is a no-op. Task errors are not cleanup
// errors; only caller-context cancellation makes CleanupJob fail.
func (m *Manager) CleanupJob(ctx context.Context, jobID string) error {
	m.mu.Lock()
	s, ok := m.slots[jobID]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	t := s.task
	q := s.queue
	m.mu.Unlock()

	if t != nil && !t.Finished() {
		t.Cancel()
		if err := t.Wait(ctx); err != nil && !t.Finished() {
			return fmt.Errorf("cleanup job %q: %w", jobID, err)
		}
	}

	// The task should be gone by now. If it somehow is not, leave the
	// slot in place for a later pass rather than yanking a live queue
	// out from under a running worker.
	if t != nil && !t.Finished() {
		m.logger.Warn("cleanup deferred, task still running",
			slog.String("job_id", jobID),
			slog.String("task_id", t.ID().String()),
		)
		return nil
	}

	drained := 0
	for {
		if _, ok := q.TryPop(); !ok {
			break
		}
		drained++
	}

	m.mu.Lock()
	delete(m.slots, jobID)
	m.mu.Unlock()

	m.extensions.EmitJobCleaned(ctx, jobID, drained)
	m.logger.Info("job cleaned up",
		slog.String("job_id", jobID),
		slog.Int("drained", drained),
	)
	return nil
}

// Len returns the number of registered jobs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// jobIDs returns a snapshot of all registered job IDs.
func (m *Manager) jobIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.slots))
	for jobID := range m.slots {
		ids = append(ids, jobID)
	}
	return ids
}
