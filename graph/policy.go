package graph

import "time"

// NodePolicy configures ambient execution behavior for a specific node —
// currently just a timeout. Work functions are trusted to manage their own
// deadlines, but a production service built on this engine needs a backstop
// against a hung blocking call, so WithPolicy threads one through to the
// context passed into dispatch.
//
// Retry policies are deliberately absent: failures are terminal for that
// node only.
type NodePolicy struct {
	// Timeout bounds how long dispatch may run before its context is
	// cancelled. Zero means no additional deadline beyond whatever ctx
	// Graph.Run was given.
	Timeout time.Duration
}

// WithPolicy attaches a NodePolicy to a node at construction time.
func WithPolicy(p NodePolicy) NodeOption {
	return func(n *Node) { n.policy = p }
}
