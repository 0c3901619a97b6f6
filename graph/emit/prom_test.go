package emit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromEmitter_RecordsDurationAndExceptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	emitter := NewPromEmitter(reg)

	emitter.Emit(Event{NodeName: "enrich", Msg: "node.execution", Meta: map[string]any{"duration_seconds": 0.2}})
	emitter.Emit(Event{NodeName: "enrich", Msg: "node.exception", Meta: map[string]any{"error": "boom"}})

	if got := testutil.ToFloat64(emitter.exceptions.WithLabelValues("enrich")); got != 1 {
		t.Errorf("node_exceptions_total = %v, want 1", got)
	}
	if testutil.CollectAndCount(emitter.duration) != 1 {
		t.Errorf("expected one duration series")
	}
}

func TestPromEmitter_FlagGateTracksMostRecentCheck(t *testing.T) {
	reg := prometheus.NewRegistry()
	emitter := NewPromEmitter(reg)

	emitter.Emit(Event{NodeName: "gated", Msg: "node.feature_flag_skip"})
	if got := testutil.ToFloat64(emitter.flagGate.WithLabelValues("gated")); got != 0 {
		t.Errorf("flags_enabled = %v, want 0 after skip", got)
	}

	emitter.Emit(Event{NodeName: "gated", Msg: "node.start"})
	if got := testutil.ToFloat64(emitter.flagGate.WithLabelValues("gated")); got != 1 {
		t.Errorf("flags_enabled = %v, want 1 after start", got)
	}
}

func TestPromEmitter_IgnoresGraphLevelEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	emitter := NewPromEmitter(reg)

	emitter.Emit(Event{NodeName: "", Msg: "dag.execution", Meta: map[string]any{"duration_seconds": 1.0}})

	if testutil.CollectAndCount(emitter.duration) != 0 {
		t.Errorf("expected no duration series for graph-level event")
	}
}

func TestPromEmitter_InterfaceContract(t *testing.T) {
	var _ Emitter = NewPromEmitter(prometheus.NewRegistry())
}
