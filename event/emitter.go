package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivegrid/jobqueue/id"
	"github.com/fivegrid/jobqueue/queue"
)

// Emitter turns structured event calls into messages on a single queue.
// Create one per job slot with NewEmitter; it is safe for concurrent use
// because the underlying queue is.
type Emitter struct {
	queue *queue.Queue
}

// NewEmitter creates an emitter bound to the given queue.
func NewEmitter(q *queue.Queue) *Emitter {
	return &Emitter{queue: q}
}

// Queue returns the queue this emitter pushes onto.
func (e *Emitter) Queue() *queue.Queue { return e.queue }

// Emit serializes an event of the given type and pushes it onto the
// queue. The payload may be nil. The encoded message on the queue is
// the event's JSON representation as []byte.
func (e *Emitter) Emit(typ Type, payload any) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload for event %q: %w", typ, err)
		}
		raw = data
	}

	evt := &Event{
		ID:        id.NewEventID(),
		Type:      typ,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal event %q: %w", typ, err)
	}

	e.queue.Push(encoded)
	return evt, nil
}

// Message emits a TypeMessage event carrying the given text.
func (e *Emitter) Message(text string) (*Event, error) {
	return e.Emit(TypeMessage, map[string]string{"text": text})
}

// Error emits a TypeError event carrying the error's message.
func (e *Emitter) Error(err error) (*Event, error) {
	return e.Emit(TypeError, map[string]string{"error": err.Error()})
}

// Progress emits a TypeProgress event with completed/total counts.
func (e *Emitter) Progress(completed, total int) (*Event, error) {
	return e.Emit(TypeProgress, map[string]int{
		"completed": completed,
		"total":     total,
	})
}

// End emits a TypeEnd event signalling that the worker has finished
// producing events for this job.
func (e *Emitter) End() (*Event, error) {
	return e.Emit(TypeEnd, nil)
}
