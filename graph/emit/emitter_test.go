package emit

import (
	"context"
	"testing"
)

type mockEmitter struct {
	events []Event
}

func (m *mockEmitter) Emit(event Event) { m.events = append(m.events, event) }

func (m *mockEmitter) EmitBatch(_ context.Context, events []Event) error {
	m.events = append(m.events, events...)
	return nil
}

func (m *mockEmitter) Flush(context.Context) error { return nil }

func TestEmitter_InterfaceContract(t *testing.T) {
	var _ Emitter = (*mockEmitter)(nil)
}

func TestEmitter_Emit(t *testing.T) {
	t.Run("single event", func(t *testing.T) {
		e := &mockEmitter{}
		e.Emit(Event{RunID: "run-001", NodeName: "node1", Msg: "node.start"})
		if len(e.events) != 1 || e.events[0].Msg != "node.start" {
			t.Fatalf("unexpected events: %+v", e.events)
		}
	})

	t.Run("with metadata", func(t *testing.T) {
		e := &mockEmitter{}
		e.Emit(Event{
			RunID: "run-001", NodeName: "llm", Msg: "node.execution",
			Meta: map[string]any{"duration_seconds": 0.25},
		})
		if e.events[0].Meta["duration_seconds"] != 0.25 {
			t.Errorf("expected duration_seconds = 0.25, got %v", e.events[0].Meta["duration_seconds"])
		}
	})

	t.Run("zero value event does not panic", func(t *testing.T) {
		e := &mockEmitter{}
		e.Emit(Event{})
		if len(e.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(e.events))
		}
	})
}

func TestEmitter_EmitBatch(t *testing.T) {
	e := &mockEmitter{}
	batch := []Event{
		{RunID: "run-001", Msg: "node.start"},
		{RunID: "run-001", Msg: "node.execution"},
	}
	if err := e.EmitBatch(context.Background(), batch); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	if len(e.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(e.events))
	}
}
