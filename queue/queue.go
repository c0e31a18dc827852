package queue

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO of opaque messages. It is safe for
// concurrent use by multiple producers and a consumer.
type Queue struct {
	mu    sync.Mutex
	items []any

	// notify wakes a blocked Pop when a message arrives. Buffered with
	// capacity 1 so Push never blocks on the signal.
	notify chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Push appends a message to the queue. It never blocks.
func (q *Queue) Push(v any) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.signal()
}

// TryPop removes and returns the oldest message. The second return value
// is false when the queue is empty.
func (q *Queue) TryPop() (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Pop removes and returns the oldest message, blocking until a message
// is available or ctx is cancelled.
func (q *Queue) Pop(ctx context.Context) (any, error) {
	for {
		q.mu.Lock()
		v, ok := q.popLocked()
		remaining := len(q.items)
		q.mu.Unlock()

		if ok {
			// Re-signal so a concurrent waiter is not stranded when
			// more messages remain.
			if remaining > 0 {
				q.signal()
			}
			return v, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of messages currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) popLocked() (any, bool) {
	if len(q.items) == 0 {
		return nil, false
	}

	v := q.items[0]
	q.items[0] = nil // release the reference
	q.items = q.items[1:]
	return v, true
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
