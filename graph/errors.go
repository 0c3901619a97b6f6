// Package graph provides the concurrent DAG execution engine.
package graph

import "errors"

// ErrCycleSuspected is a best-effort diagnostic, never guaranteed and never
// part of Graph.Run's own contract: a back-edge from a descendant to an
// ancestor deadlocks the parent barrier rather than erroring — cycle
// detection is a non-goal, graph construction is expected to be correct.
// Callers that want an escape hatch during development can wrap Run with
// context.WithTimeout and treat a context.DeadlineExceeded on an
// otherwise-idle graph as a signal to check for cycles — this sentinel
// exists for that caller-side diagnostic, not for anything Run returns
// itself.
var ErrCycleSuspected = errors.New("graph: suspected cycle (parent barrier never satisfied)")
