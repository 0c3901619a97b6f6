package emit

import "context"

// NullEmitter discards every event. It is the Graph default so observability
// is opt-in rather than mandatory.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that does nothing, at zero cost.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

func (n *NullEmitter) Emit(Event) {}

func (n *NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

func (n *NullEmitter) Flush(context.Context) error { return nil }
