package emit

import (
	"context"
	"testing"
)

func TestNullEmitter_NoOp(t *testing.T) {
	emitter := NewNullEmitter()

	events := []Event{
		{RunID: "run-001", NodeName: "node1", Msg: "node.start"},
		{RunID: "run-001", NodeName: "node1", Msg: "node.execution"},
		{RunID: "run-001", NodeName: "node2", Msg: "node.exception", Meta: map[string]any{"error": "test"}},
	}
	for _, event := range events {
		emitter.Emit(event)
	}

	if err := emitter.EmitBatch(context.Background(), events); err != nil {
		t.Errorf("EmitBatch: %v", err)
	}
	if err := emitter.Flush(context.Background()); err != nil {
		t.Errorf("Flush: %v", err)
	}
}

func TestNullEmitter_InterfaceContract(t *testing.T) {
	var _ Emitter = NewNullEmitter()
}
