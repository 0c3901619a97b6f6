package emit

import "time"

// Event is an observability record describing one moment of a Graph run:
// a node starting, finishing, being skipped, or failing, plus the one
// graph-level "dag.execution" event emitted when a run completes.
//
// NodeName is empty for the graph-level event. Meta carries event-specific
// detail (e.g. "error" on node.exception, "duration_seconds" on
// node.execution and dag.execution) and may be nil.
type Event struct {
	RunID    string
	NodeName string
	Msg      string
	Meta     map[string]any
	Time     time.Time
}
