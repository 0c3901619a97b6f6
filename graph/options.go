// Package graph provides the concurrent DAG execution engine.
package graph

import "github.com/dshills/enrichgraph-go/graph/emit"

// Option is a functional option for configuring a Graph at construction
// time — chainable, self-documenting, and optional.
type Option func(*Graph)

// WithMaxConcurrent bounds how many blocking (WithBlockingWork) nodes may
// run their dispatch step at once, via the dispatcher's semaphore. It has
// no effect on non-blocking nodes, which always run inline as soon as
// their gates pass. Default: 0, meaning unbounded — every blocking node
// dispatches immediately; concurrency here comes from BFS fan-out, not
// from this throttle.
func WithMaxConcurrent(n int) Option {
	return func(g *Graph) { g.maxConcurrent = n }
}

// WithEmitter attaches an observability sink. Default: emit.NewNullEmitter,
// so a Graph built without this option never blocks on or allocates for
// events it has nowhere to send.
func WithEmitter(e emit.Emitter) Option {
	return func(g *Graph) { g.emitter = e }
}
