// Package emit provides pluggable observability sinks for graph execution:
// logging, OpenTelemetry tracing, Prometheus metrics, and a null sink.
package emit

import "context"

// Emitter receives observability events from a running Graph. Implementations
// must be safe for concurrent use — Emit is called from every node's own
// goroutine — and must never block the caller on a slow backend or panic.
type Emitter interface {
	// Emit sends a single event. It must not block or panic; a slow or
	// failing backend should buffer, drop, or log internally instead.
	Emit(event Event)

	// EmitBatch sends events in one operation, in order. Used by emitters
	// that buffer between Flush calls.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until any buffered events are delivered or ctx expires.
	// Safe to call multiple times.
	Flush(ctx context.Context) error
}
