package jobqueue

import "errors"

var (
	// ErrDuplicateJob is returned by CreateQueue when a queue already
	// exists for the given job ID.
	ErrDuplicateJob = errors.New("jobqueue: queue for job already exists")

	// ErrServiceClosed is returned by CreateQueue when the manager has
	// not been started or has been stopped.
	ErrServiceClosed = errors.New("jobqueue: manager is closed")

	// ErrUnknownJob is returned by StartJob and GetQueueData when no
	// queue exists for the given job ID.
	ErrUnknownJob = errors.New("jobqueue: no queue for job")
)
