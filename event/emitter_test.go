package event_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fivegrid/jobqueue/event"
	"github.com/fivegrid/jobqueue/queue"
)

func popEvent(t *testing.T, q *queue.Queue) *event.Event {
	t.Helper()
	v, ok := q.TryPop()
	if !ok {
		t.Fatal("expected a message on the queue")
	}
	data, ok := v.([]byte)
	if !ok {
		t.Fatalf("queue message is %T, want []byte", v)
	}
	var evt event.Event
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return &evt
}

func TestEmitPushesEncodedEvent(t *testing.T) {
	q := queue.New()
	em := event.NewEmitter(q)

	sent, err := em.Emit(event.TypeMessage, map[string]string{"text": "hello"})
	if err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if sent.ID.IsNil() {
		t.Error("expected event ID to be set")
	}
	if !strings.HasPrefix(sent.ID.String(), "evt_") {
		t.Errorf("event ID = %q, want evt_ prefix", sent.ID.String())
	}

	got := popEvent(t, q)
	if got.Type != event.TypeMessage {
		t.Errorf("event type = %q, want %q", got.Type, event.TypeMessage)
	}
	if got.ID.String() != sent.ID.String() {
		t.Errorf("event ID mismatch: %q != %q", got.ID.String(), sent.ID.String())
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestEmitOrdering(t *testing.T) {
	q := queue.New()
	em := event.NewEmitter(q)

	if _, err := em.Message("first"); err != nil {
		t.Fatalf("Message error: %v", err)
	}
	if _, err := em.Progress(1, 2); err != nil {
		t.Fatalf("Progress error: %v", err)
	}
	if _, err := em.End(); err != nil {
		t.Fatalf("End error: %v", err)
	}

	want := []event.Type{event.TypeMessage, event.TypeProgress, event.TypeEnd}
	for _, w := range want {
		if got := popEvent(t, q).Type; got != w {
			t.Errorf("event type = %q, want %q", got, w)
		}
	}
}

func TestErrorEventPayload(t *testing.T) {
	q := queue.New()
	em := event.NewEmitter(q)

	if _, err := em.Error(errors.New("boom")); err != nil {
		t.Fatalf("Error emit error: %v", err)
	}

	got := popEvent(t, q)
	if got.Type != event.TypeError {
		t.Fatalf("event type = %q, want %q", got.Type, event.TypeError)
	}

	var payload map[string]string
	if err := json.Unmarshal(got.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["error"] != "boom" {
		t.Errorf("payload error = %q, want %q", payload["error"], "boom")
	}
}

func TestEmitUnmarshalablePayload(t *testing.T) {
	q := queue.New()
	em := event.NewEmitter(q)

	_, err := em.Emit(event.TypeMessage, func() {})
	if err == nil {
		t.Fatal("expected error for unmarshalable payload")
	}
	if q.Len() != 0 {
		t.Error("failed emit must not push onto the queue")
	}
}
