package sigsim

import (
	"context"
	"runtime"
)

// An Element is a computational unit that reads its declared input bits and
// writes its declared output bits on every evaluation step.
//
// Recompute must be a pure function of the current input values: it reads all
// inputs, computes, and writes all outputs, with no other side effects. It
// cannot fail at runtime; incompatible wiring is rejected at construction.
// An element is driven by at most one driver (loop or engine) at a time.
type Element interface {
	Recompute()
	Inputs() []Bit
	Outputs() []Bit
}

// Run drives e in a tight loop, calling Recompute until ctx is done. This is
// the busy-poll compatibility mode: the element continuously re-evaluates the
// way a physical gate does, burning a core while it runs. Prefer an Engine
// when latency of one scheduling hop is acceptable.
func Run(ctx context.Context, e Element) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.Recompute()
		runtime.Gosched()
	}
}

// A Handle controls an element loop started with Start.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches Run(ctx, e) on its own goroutine and returns immediately.
// The returned handle must be stopped by the caller; an element produces no
// effects after its handle is stopped.
func Start(ctx context.Context, e Element) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		Run(ctx, e)
	}()
	return h
}

// Stop cancels the loop and waits for it to exit.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done returns a channel closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
