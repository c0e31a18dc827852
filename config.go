package jobqueue

import "time"

// Config holds configuration for the Manager.
type Config struct {
	// SweepInterval is how often the background sweep scans for jobs
	// whose worker task has finished or been cancelled.
	SweepInterval time.Duration

	// SweepSchedule is an optional cron expression (standard 5-field or
	// a descriptor such as "@every 30s") that overrides SweepInterval.
	// Empty means use SweepInterval.
	SweepSchedule string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval: 60 * time.Second,
	}
}
