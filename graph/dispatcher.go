package graph

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// dispatcher runs a Node's work function either inline (non-blocking,
// cooperative) or behind a bounded semaphore (blocking, offloaded), two
// strategies behind one abstraction.
//
// Go has no scheduler distinct from its goroutines, so "cooperative" here
// means "runs directly on the goroutine the Graph already launched for this
// node" — it never competes for the worker budget. "Offloaded" means it
// must acquire a slot from the bounded semaphore first, so a burst of
// blocking nodes is capped at MaxConcurrent in-flight at any moment,
// independent of how many total nodes the graph has discovered.
//
// Node readiness here is purely latch-driven, not order-driven, so there
// is no priority-queue scheduler or deterministic replay ordering.
type dispatcher struct {
	sem *semaphore.Weighted
}

func newDispatcher(maxConcurrent int) *dispatcher {
	if maxConcurrent <= 0 {
		return &dispatcher{}
	}
	return &dispatcher{sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// run invokes n.work, offloading through the bounded semaphore when the
// node is declared blocking. It recovers from panics in user work, folding
// them into the returned error so Node.run's exception path is the single
// place failures surface — work never raises to the caller.
func (d *dispatcher) run(ctx context.Context, n *Node, record, output map[string]any) (err error) {
	if n.blocking && d.sem != nil {
		if acqErr := d.sem.Acquire(ctx, 1); acqErr != nil {
			return acqErr
		}
		defer d.sem.Release(1)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return n.work(ctx, record, output)
}

// evalPredicate invokes n.predicate, recovering from panics the same way
// run does, since a predicate failure is treated identically to a work
// failure.
func evalPredicate(p PredicateFunc, record, output map[string]any) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p(record, output), nil
}
