package emit

import (
	"testing"
	"time"
)

func TestEvent_Struct(t *testing.T) {
	t.Run("complete event with all fields", func(t *testing.T) {
		now := time.Now()
		event := Event{
			RunID:    "run-001",
			NodeName: "process-node",
			Msg:      "node.execution",
			Meta:     map[string]any{"duration_seconds": 0.125},
			Time:     now,
		}

		if event.RunID != "run-001" {
			t.Errorf("expected RunID = 'run-001', got %q", event.RunID)
		}
		if event.NodeName != "process-node" {
			t.Errorf("expected NodeName = 'process-node', got %q", event.NodeName)
		}
		if event.Msg != "node.execution" {
			t.Errorf("expected Msg = 'node.execution', got %q", event.Msg)
		}
		if event.Meta["duration_seconds"] != 0.125 {
			t.Errorf("expected Meta['duration_seconds'] = 0.125, got %v", event.Meta["duration_seconds"])
		}
		if !event.Time.Equal(now) {
			t.Errorf("expected Time = %v, got %v", now, event.Time)
		}
	})

	t.Run("graph-level event has empty NodeName", func(t *testing.T) {
		event := Event{RunID: "run-002", Msg: "dag.execution"}
		if event.NodeName != "" {
			t.Errorf("expected NodeName = \"\" for a graph-level event, got %q", event.NodeName)
		}
	})

	t.Run("zero value event", func(t *testing.T) {
		var event Event
		if event.RunID != "" || event.NodeName != "" || event.Msg != "" {
			t.Errorf("expected all string fields zero, got %+v", event)
		}
		if event.Meta != nil {
			t.Error("expected zero value Meta to be nil")
		}
	})
}

func TestEvent_ExceptionCarriesErrorInMeta(t *testing.T) {
	event := Event{
		RunID:    "run-001",
		NodeName: "validator",
		Msg:      "node.exception",
		Meta:     map[string]any{"error": "invalid input"},
	}
	if event.Meta["error"] != "invalid input" {
		t.Errorf("expected error meta, got %v", event.Meta["error"])
	}
}
