package graph

import (
	"context"
	"time"

	"github.com/dshills/enrichgraph-go/graph/emit"
)

// FlagReader is the read side of a feature-flag store, the only interface
// Node and Graph depend on. flagstore.FlagStore satisfies it; tests may
// supply a trivial map-backed implementation instead.
type FlagReader interface {
	IsEnabled(name string) bool
}

// runCtx bundles the per-run collaborators a Node needs that are not part
// of its own identity: the latches allocated for this run, the dispatcher,
// the emitter, and the run's identifier for observability events.
type runCtx struct {
	latches    map[*Node]*doneLatch
	dispatcher *dispatcher
	emitter    emit.Emitter
	runID      string
}

// run executes one invocation of the node for one record: parent barrier,
// feature-flag gate, predicate gate, dispatch, exception capture,
// finalization. It never panics or returns an error to its caller — all
// outcomes are folded into the returned Metrics, and the node's done latch
// is set on every exit path.
func (n *Node) run(ctx context.Context, record, output map[string]any, flags FlagReader, rc *runCtx) Metrics {
	self := rc.latches[n]
	defer self.set()

	rc.emitter.Emit(emit.Event{RunID: rc.runID, NodeName: n.name, Msg: "node.start", Time: time.Now()})

	fail := func(err error) Metrics {
		rc.emitter.Emit(emit.Event{
			RunID: rc.runID, NodeName: n.name, Msg: "node.exception",
			Meta: map[string]any{"error": err.Error()}, Time: time.Now(),
		})
		return Metrics{n.name + ".exception": err.Error()}
	}

	m := make(Metrics, 2)

	if len(n.parents) > 0 {
		barrierStart := time.Now()
		for _, p := range n.parents {
			pl, ok := rc.latches[p]
			if !ok {
				// Parent is not reachable from this run's root — a
				// construction bug. Treat it as already satisfied rather
				// than deadlocking forever.
				continue
			}
			if err := pl.wait(ctx); err != nil {
				return fail(err)
			}
		}
		m[n.name+".awaiting_parents"] = formatSeconds(time.Since(barrierStart))
	}

	// execStart marks the beginning of the "{name}.execution" measurement
	// window: the flag check, the predicate check, and dispatch all fall
	// inside it, since execution time accounts for every gate a node pays
	// once it is past the parent barrier.
	execStart := time.Now()

	if n.featureFlag != "" && !flags.IsEnabled(n.featureFlag) {
		rc.emitter.Emit(emit.Event{RunID: rc.runID, NodeName: n.name, Msg: "node.feature_flag_skip", Time: time.Now()})
		return Metrics{n.name + ".feature_flag": "False"}
	}

	if n.predicate != nil {
		ok, err := evalPredicate(n.predicate, record, output)
		if err != nil {
			return fail(err)
		}
		if !ok {
			rc.emitter.Emit(emit.Event{RunID: rc.runID, NodeName: n.name, Msg: "node.predicate_skip", Time: time.Now()})
			return Metrics{n.name + ".exe_condition": "False"}
		}
	}

	if n.work != nil {
		workCtx := ctx
		if n.policy.Timeout > 0 {
			var cancel context.CancelFunc
			workCtx, cancel = context.WithTimeout(ctx, n.policy.Timeout)
			defer cancel()
		}
		err := rc.dispatcher.run(workCtx, n, record, output)
		dur := time.Since(execStart)
		if err != nil {
			return fail(err)
		}
		m[n.name+".execution"] = formatSeconds(dur)
		rc.emitter.Emit(emit.Event{
			RunID: rc.runID, NodeName: n.name, Msg: "node.execution",
			Meta: map[string]any{"duration_seconds": dur.Seconds()}, Time: time.Now(),
		})
	}

	return m
}
