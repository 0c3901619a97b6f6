package graph

import (
	"context"
	"time"

	"github.com/dshills/enrichgraph-go/graph/emit"
	"github.com/google/uuid"
)

// Graph owns a synthetic root Node and drives one full record through the
// DAG reachable from it. A Graph is built once (nodes attached as
// descendants of root) and invoked many times via Run.
//
// Graph carries no state-type parameter: nodes communicate by mutating a
// shared map[string]any.
type Graph struct {
	root *Node

	maxConcurrent int
	emitter       emit.Emitter
}

// New constructs an empty Graph with a fresh synthetic root and applies
// opts. The root has no flag, no predicate, no work, and no parents.
func New(opts ...Option) *Graph {
	g := &Graph{
		root:          &Node{name: "root"},
		maxConcurrent: 0,
		emitter:       emit.NewNullEmitter(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Attach makes n a top-level node: a direct child of the synthetic root.
// n's own Parents are untouched — attaching to root does not add root to
// n.Parents, so top-level nodes never wait on a "root done" latch (root
// has no work to wait for).
func (g *Graph) Attach(n *Node) {
	g.root.mu.Lock()
	g.root.children = append(g.root.children, n)
	g.root.mu.Unlock()
}

// Root returns the graph's synthetic root node, primarily so callers and
// tests can Attach through it directly if they prefer working with a Node
// handle instead of the Graph method.
func (g *Graph) Root() *Node { return g.root }

// discover performs a breadth-first traversal from root, visiting each
// reachable node exactly once by pointer identity, and allocates a fresh
// done latch for every visited non-root node. BFS is used only to discover
// and launch tasks; any traversal visiting every node once would do, since
// actual execution order emerges from the latches, not from discovery
// order.
func (g *Graph) discover() (order []*Node, latches map[*Node]*doneLatch) {
	visited := map[*Node]struct{}{g.root: {}}
	latches = make(map[*Node]*doneLatch)
	queue := []*Node{g.root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range cur.Children() {
			if _, ok := visited[c]; ok {
				continue
			}
			visited[c] = struct{}{}
			latches[c] = newDoneLatch()
			order = append(order, c)
			queue = append(queue, c)
		}
	}
	return order, latches
}

// Run drives one record through the DAG: fresh output map, BFS discovery,
// one goroutine scheduled per discovered node before any of them completes,
// metrics merged last-writer-wins, "dag.execution" appended. It never
// panics and never surfaces node-level failures as an error — those live
// exclusively in the returned Metrics. The returned error is non-nil only
// if ctx is cancelled before every node has reported in; node goroutines
// already in flight are not cancelled retroactively and may continue
// running to completion.
func (g *Graph) Run(ctx context.Context, record map[string]any, flags FlagReader) (Metrics, map[string]any, error) {
	return g.runWithID(ctx, record, flags, uuid.NewString())
}

func (g *Graph) runWithID(ctx context.Context, record map[string]any, flags FlagReader, runID string) (Metrics, map[string]any, error) {
	start := time.Now()
	output := make(map[string]any)
	order, latches := g.discover()

	rc := &runCtx{
		latches:    latches,
		dispatcher: newDispatcher(g.maxConcurrent),
		emitter:    g.emitter,
		runID:      runID,
	}

	results := make(chan Metrics, len(order))
	for _, n := range order {
		go func(n *Node) {
			results <- n.run(ctx, record, output, flags, rc)
		}(n)
	}

	merged := make(Metrics, len(order)*2)
	for i := 0; i < len(order); i++ {
		select {
		case m := <-results:
			merged.merge(m)
		case <-ctx.Done():
			return merged, output, ctx.Err()
		}
	}

	merged["dag.execution"] = formatSeconds(time.Since(start))
	g.emitter.Emit(emit.Event{
		RunID: rc.runID, Msg: "dag.execution",
		Meta: map[string]any{"duration_seconds": time.Since(start).Seconds()}, Time: time.Now(),
	})
	return merged, output, nil
}

// RunResult packages one Graph.Run invocation's outcome for callers that
// want a single value to pass to an Emitter or the ledger package, rather
// than threading the three Run return values through separately.
type RunResult struct {
	RunID    string
	Metrics  Metrics
	Output   map[string]any
	Duration time.Duration
}

// RunWithResult runs the graph and wraps the outcome as a RunResult, using
// a generated UUID as RunID. It runs the same code path as Run — this is a
// convenience wrapper, not a second implementation.
func (g *Graph) RunWithResult(ctx context.Context, record map[string]any, flags FlagReader) (RunResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	metrics, output, err := g.runWithID(ctx, record, flags, runID)
	return RunResult{
		RunID:    runID,
		Metrics:  metrics,
		Output:   output,
		Duration: time.Since(start),
	}, err
}

// RunDiagnosingCycles is Run with the caller-side escape hatch ErrCycleSuspected
// documents: it bounds the run with budget and, if the budget expires before
// every node has reported in while ctx itself is still live, returns
// ErrCycleSuspected instead of the bare context.DeadlineExceeded Run would
// otherwise surface. It does not inspect which nodes are still waiting. It is a development/test diagnostic, not a guarantee —
// a slow but cycle-free graph racing a too-tight budget produces the same
// symptom and the same ErrCycleSuspected result.
func (g *Graph) RunDiagnosingCycles(ctx context.Context, record map[string]any, flags FlagReader, budget time.Duration) (Metrics, map[string]any, error) {
	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	metrics, output, err := g.Run(runCtx, record, flags)
	if err != nil && ctx.Err() == nil && runCtx.Err() == context.DeadlineExceeded {
		return metrics, output, ErrCycleSuspected
	}
	return metrics, output, err
}
