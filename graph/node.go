// Package graph provides the concurrent DAG execution engine at the core
// of the enrichment pipeline: a Graph of Nodes, each gated by an optional
// feature flag and an optional predicate, cooperating to populate a shared
// output mapping for one input record.
package graph

import (
	"context"
	"sync"
)

// WorkFunc is the user-supplied side-effecting function attached to a Node.
// It receives the read-only record and the run's shared output map, and
// mutates output in place; its return value (other than error) is discarded.
//
// A WorkFunc that respects ctx cancellation promptly is "non-blocking" for
// dispatch purposes (see WithWork); one that performs a blocking call
// (network I/O, CPU-bound work) regardless of ctx should be constructed with
// WithBlockingWork so the Dispatcher routes it through the bounded worker
// pool instead of running it on the calling goroutine's fast path.
type WorkFunc func(ctx context.Context, record, output map[string]any) error

// PredicateFunc evaluates the current record and output to decide whether a
// Node should execute. It must be pure and fast: predicates run inline,
// never offloaded to the worker pool.
type PredicateFunc func(record, output map[string]any) bool

// Node is a vertex in the graph: identity, parent set, optional gating flag,
// optional predicate, optional work function. Nodes are immutable after
// construction except for their children set, which grows as later nodes
// name them as a parent.
//
// Nodes are identified for traversal and latch lookup by pointer identity,
// never by Name — a graph may legitimately contain distinct nodes that share
// a name (only the metrics-key namespace collides, not the node itself).
type Node struct {
	name        string
	parents     []*Node
	featureFlag string
	work        WorkFunc
	blocking    bool
	predicate   PredicateFunc
	policy      NodePolicy

	mu       sync.Mutex
	children []*Node
}

// NodeOption configures optional Node behavior at construction time.
type NodeOption func(*Node)

// WithFeatureFlag gates the node's execution on FlagReader.IsEnabled(flag).
// When the flag is off, the node records a skip metric and never invokes
// its predicate or work.
func WithFeatureFlag(flag string) NodeOption {
	return func(n *Node) { n.featureFlag = flag }
}

// WithWork attaches a non-blocking work function: it runs inline on the
// goroutine launched for this node, without competing for the Dispatcher's
// bounded worker-pool budget.
func WithWork(fn WorkFunc) NodeOption {
	return func(n *Node) {
		n.work = fn
		n.blocking = false
	}
}

// WithBlockingWork attaches a work function that performs blocking I/O or
// CPU-bound computation. The Dispatcher offloads it through a bounded
// semaphore-backed worker pool so a burst of blocking nodes cannot starve
// the graph's other concurrent node goroutines.
func WithBlockingWork(fn WorkFunc) NodeOption {
	return func(n *Node) {
		n.work = fn
		n.blocking = true
	}
}

// WithPredicate attaches a gate evaluated after the feature-flag check and
// before dispatch. A false result records a skip metric; the work function
// is not invoked.
func WithPredicate(p PredicateFunc) NodeOption {
	return func(n *Node) { n.predicate = p }
}

// NewNode constructs a Node with the given name and parents, applying opts.
// The constructor updates each parent's children set symmetrically, so for
// every edge p -> c, c is reachable from p by BFS and p is in c.parents.
//
// parents may be nil or empty for a top-level node; attach it to a Graph
// with Graph.Attach to make it reachable from the synthetic root.
func NewNode(name string, parents []*Node, opts ...NodeOption) *Node {
	n := &Node{
		name:    name,
		parents: append([]*Node(nil), parents...),
	}
	for _, opt := range opts {
		opt(n)
	}
	for _, p := range n.parents {
		p.mu.Lock()
		p.children = append(p.children, n)
		p.mu.Unlock()
	}
	return n
}

// Name returns the node's identifying name, used only in metric keys.
func (n *Node) Name() string { return n.name }

// Parents returns the node's parent set in construction order.
func (n *Node) Parents() []*Node {
	return append([]*Node(nil), n.parents...)
}

// Children returns the node's children. NewNode maintains them
// symmetrically with each child's parents; Graph.Attach adds children to
// the root without adding the root to the child's parents.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*Node(nil), n.children...)
}
