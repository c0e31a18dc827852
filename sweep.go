package jobqueue

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/fivegrid/jobqueue/id"
)

// sweepLoop periodically reclaims jobs whose worker task has finished.
// It runs until stopCh closes. A panic inside a sweep pass is recovered
// and logged and the loop keeps ticking; only a panic escaping the loop
// machinery itself is fatal, in which case Stop reports it.
func (m *Manager) sweepLoop(stopCh <-chan struct{}) {
	defer m.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			m.sweepErr = fmt.Errorf("jobqueue: sweep loop panic: %v\n%s", r, debug.Stack())
			m.mu.Unlock()
			m.logger.Error("sweep loop aborted", slog.Any("panic", r))
		}
	}()

	for {
		var next time.Duration
		if m.schedule != nil {
			next = time.Until(m.schedule.Next(time.Now()))
		} else {
			next = m.config.SweepInterval
		}
		timer := time.NewTimer(next)

		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		m.sweepPass()
	}
}

// sweepPass scans all jobs once and cleans up those whose task has
// finished or been cancelled. Per-job cleanup errors are logged and do
// not stop the pass; a panic, whether from the scan or from an
// extension hook, is recovered so the next pass still runs.
func (m *Manager) sweepPass() {
	passID := id.NewSweepID()
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("sweep pass panicked",
				slog.String("sweep_id", passID.String()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	start := time.Now()
	reclaimed := 0
	for _, jobID := range m.finishedJobIDs() {
		if cleanupErr := m.CleanupJob(context.Background(), jobID); cleanupErr != nil {
			m.logger.Warn("sweep cleanup failed",
				slog.String("sweep_id", passID.String()),
				slog.String("job_id", jobID),
				slog.String("error", cleanupErr.Error()),
			)
			continue
		}
		reclaimed++
	}
	elapsed := time.Since(start)

	if reclaimed > 0 {
		m.logger.Debug("sweep pass completed",
			slog.String("sweep_id", passID.String()),
			slog.Int("reclaimed", reclaimed),
			slog.Duration("elapsed", elapsed),
		)
	}
	m.extensions.EmitSweepCompleted(context.Background(), reclaimed, elapsed)
}

// finishedJobIDs returns the jobs whose worker task has run to
// completion, failure, or cancellation. Jobs with no task yet are kept.
func (m *Manager) finishedJobIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for jobID, s := range m.slots {
		if s.task != nil && s.task.Finished() {
			ids = append(ids, jobID)
		}
	}
	return ids
}
