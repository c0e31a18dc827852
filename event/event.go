// Package event provides the event-emission facade bound to each job
// queue. An Emitter translates structured event calls into JSON-encoded
// messages pushed onto the queue it was created with; the two are bound
// 1:1 for the lifetime of the job slot.
package event

import (
	"encoding/json"
	"time"

	"github.com/fivegrid/jobqueue/id"
)

// Type names the kind of an emitted event.
type Type string

// Default event types every emitter supports. Arbitrary additional
// types may be emitted with Emitter.Emit.
const (
	TypeMessage  Type = "message"
	TypeError    Type = "error"
	TypeProgress Type = "progress"
	TypeEnd      Type = "end"
)

// Event is a single structured event. Events are serialized to JSON
// before being pushed onto the job's queue.
type Event struct {
	ID        id.EventID      `json:"id"`
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
