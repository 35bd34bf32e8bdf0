package sigsim

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultSettleBudget is the default number of dispatches per element that
// Settle tolerates before giving up on a circuit that keeps changing.
const DefaultSettleBudget = 64

// An Engine propagates signal changes without polling: setting a watched
// signal enqueues the elements that read it onto a work queue drained by a
// worker pool. An element is queued at most once until a worker picks it up,
// so feedback loops cannot grow the queue without bound.
//
// Engines preserve the per-signal locking semantics of the busy-poll mode;
// they only change when recomputation happens, not what it observes.
type Engine struct {
	workers int
	budget  int
	log     logrus.FieldLogger

	mu         sync.Mutex
	cond       *sync.Cond
	queue      []*task
	elems      []*task
	byElem     map[Element]*task
	active     int    // tasks queued or being recomputed
	dispatched uint64 // recomputes performed since Start
	running    bool

	cancel context.CancelFunc
	grp    *errgroup.Group
}

type task struct {
	e       Element
	pending bool // queued, or due for a re-run after the current recompute
	running bool // a worker is recomputing it right now
}

// An Option configures an Engine.
type Option func(*Engine)

// Workers sets the size of the worker pool. Values <= 0 select GOMAXPROCS.
func Workers(n int) Option {
	return func(g *Engine) { g.workers = n }
}

// SettleBudget sets the number of dispatches per element that Settle allows
// before reporting ErrUnsettled.
func SettleBudget(n int) Option {
	return func(g *Engine) { g.budget = n }
}

// Logger sets the logger used for engine diagnostics. The default discards
// everything.
func Logger(l logrus.FieldLogger) Option {
	return func(g *Engine) { g.log = l }
}

// NewEngine returns an idle engine. Register elements with Add, then call
// Start.
func NewEngine(opts ...Option) *Engine {
	l := logrus.New()
	l.SetOutput(io.Discard)
	g := &Engine{
		budget: DefaultSettleBudget,
		log:    l,
		byElem: make(map[Element]*task),
	}
	g.cond = sync.NewCond(&g.mu)
	for _, o := range opts {
		o(g)
	}
	if g.workers <= 0 {
		g.workers = runtime.GOMAXPROCS(-1)
	}
	if g.workers <= 0 {
		g.workers = 1
	}
	if g.budget <= 0 {
		g.budget = DefaultSettleBudget
	}
	return g
}

// Add registers elements and subscribes to their input signals. Elements must
// be added before Start. Inputs that are not signals or vector cells from
// this package cannot be watched; changes to them are only picked up by an
// explicit Kick.
func (g *Engine) Add(elems ...Element) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return errors.New("cannot add elements to a running engine")
	}
	for _, e := range elems {
		if e == nil {
			return errors.Wrap(ErrBadWiring, "nil element")
		}
		if g.byElem[e] != nil {
			continue
		}
		t := &task{e: e}
		g.byElem[e] = t
		g.elems = append(g.elems, t)
		for _, in := range e.Inputs() {
			w, ok := in.(watchable)
			if !ok {
				g.log.Warnf("input %T is not watchable; it is only re-read on Kick", in)
				continue
			}
			w.watch(func() { g.enqueue(t) })
		}
	}
	return nil
}

// Start seeds one evaluation of every registered element and launches the
// worker pool. The pool runs until Stop is called or ctx is canceled.
func (g *Engine) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return errors.New("engine already started")
	}
	if len(g.elems) == 0 {
		g.mu.Unlock()
		return errors.Wrap(ErrBadWiring, "empty element list")
	}
	g.running = true
	g.dispatched = 0
	ctx, g.cancel = context.WithCancel(ctx)
	g.grp, ctx = errgroup.WithContext(ctx)
	for _, t := range g.elems {
		g.enqueueLocked(t)
	}
	workers, elems := g.workers, len(g.elems)
	g.mu.Unlock()

	// wake blocked workers and waiters on cancellation
	context.AfterFunc(ctx, func() {
		g.mu.Lock()
		g.cond.Broadcast()
		g.mu.Unlock()
	})

	g.log.WithFields(logrus.Fields{"workers": workers, "elements": elems}).
		Debug("engine started")
	for i := 0; i < workers; i++ {
		g.grp.Go(func() error { return g.run(ctx) })
	}
	return nil
}

// Stop cancels the worker pool and waits for all workers to exit. Stopping an
// idle engine is a no-op. The engine can be started again afterwards.
func (g *Engine) Stop() error {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return nil
	}
	cancel, grp := g.cancel, g.grp
	g.mu.Unlock()

	cancel()
	err := grp.Wait()

	g.mu.Lock()
	g.running = false
	g.cond.Broadcast() // release any Settle waiters
	g.mu.Unlock()
	g.log.Debug("engine stopped")
	return err
}

// Kick forces a re-evaluation of the given elements, or of every registered
// element when called without arguments. Needed only for elements whose
// inputs the engine cannot watch (see Add and siglib.Source).
func (g *Engine) Kick(elems ...Element) {
	g.mu.Lock()
	ts := g.elems
	if len(elems) > 0 {
		ts = make([]*task, 0, len(elems))
		for _, e := range elems {
			if t := g.byElem[e]; t != nil {
				ts = append(ts, t)
			}
		}
	}
	for _, t := range ts {
		g.enqueueLocked(t)
	}
	g.mu.Unlock()
}

// Settle blocks until the circuit is quiescent: the queue is empty and no
// worker is recomputing. If the circuit keeps changing past the dispatch
// budget (SettleBudget per element), Settle reports ErrUnsettled; this is the
// documented policy for oscillating feedback loops, instead of spinning
// forever.
func (g *Engine) Settle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		g.mu.Lock()
		g.cond.Broadcast()
		g.mu.Unlock()
	})
	defer stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return errors.New("engine not started")
	}
	start := g.dispatched
	limit := uint64(g.budget) * uint64(len(g.elems))
	for g.active > 0 {
		if !g.running {
			return errors.New("engine stopped while settling")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if n := g.dispatched - start; n > limit {
			g.log.WithField("dispatches", n).Warn("circuit still changing, giving up")
			return errors.Wrapf(ErrUnsettled, "after %d dispatches", n)
		}
		g.cond.Wait()
	}
	return nil
}

// Quiescent reports whether no evaluation work is queued or in flight.
func (g *Engine) Quiescent() bool {
	g.mu.Lock()
	q := g.active == 0
	g.mu.Unlock()
	return q
}

// Dispatches returns the number of recompute steps performed since Start.
func (g *Engine) Dispatches() uint64 {
	g.mu.Lock()
	n := g.dispatched
	g.mu.Unlock()
	return n
}

// Size returns the number of registered elements.
func (g *Engine) Size() int {
	g.mu.Lock()
	n := len(g.elems)
	g.mu.Unlock()
	return n
}

func (g *Engine) enqueue(t *task) {
	g.mu.Lock()
	g.enqueueLocked(t)
	g.mu.Unlock()
}

// enqueueLocked schedules t exactly once. A task being recomputed is not
// requeued immediately; its worker requeues it when done, so no element is
// ever recomputed by two workers at once.
func (g *Engine) enqueueLocked(t *task) {
	switch {
	case t.running:
		t.pending = true
	case !t.pending:
		t.pending = true
		g.queue = append(g.queue, t)
		g.active++
		g.cond.Signal()
	}
}

func (g *Engine) run(ctx context.Context) error {
	g.mu.Lock()
	for {
		for len(g.queue) == 0 && ctx.Err() == nil {
			g.cond.Wait()
		}
		if ctx.Err() != nil {
			g.mu.Unlock()
			return nil
		}
		t := g.queue[0]
		g.queue = g.queue[1:]
		t.pending = false
		t.running = true
		g.dispatched++
		g.mu.Unlock()

		// Output writes inside Recompute fire signal watchers, which
		// re-enqueue dependents (and, in feedback loops, t itself).
		t.e.Recompute()

		g.mu.Lock()
		t.running = false
		if t.pending {
			// an input changed mid-recompute; run it again
			g.queue = append(g.queue, t)
		} else {
			g.active--
		}
		g.cond.Broadcast()
	}
}
