package graph

import (
	"context"
	"sync"
)

// doneLatch is a one-shot completion signal: settable exactly once, awaitable
// by any number of goroutines.
//
// Latches are allocated fresh per Graph.Run (see discover in engine.go)
// rather than stored on Node, so a Graph is safe to run repeatedly: a second
// run never observes latches left closed by the first.
type doneLatch struct {
	once sync.Once
	ch   chan struct{}
}

func newDoneLatch() *doneLatch {
	return &doneLatch{ch: make(chan struct{})}
}

// set closes the latch. Safe to call more than once; only the first call
// has any effect.
func (l *doneLatch) set() {
	l.once.Do(func() { close(l.ch) })
}

// wait blocks until the latch is set or ctx is done, whichever comes first.
func (l *doneLatch) wait(ctx context.Context) error {
	select {
	case <-l.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
