package sigsim

import "sync"

// A Bit is a single boolean signal endpoint. It is implemented by *Signal and
// by the per-index views returned by Vector.At, so elements can be wired to
// either interchangeably.
type Bit interface {
	Get() bool
	Set(v bool)
}

// watchable is implemented by signal endpoints that can report state changes
// to an Engine. Callbacks run on the goroutine performing the Set, after the
// signal's lock has been released.
type watchable interface {
	watch(fn func())
}

// A Signal is a shared boolean storage cell. All reads and writes go through
// a per-instance lock, so a single Get or Set is never torn. Reads of several
// distinct signals are not atomic as a group: a consumer sampling two signals
// "simultaneously" may observe an interleaved combination.
//
// Signals are shared by reference: many elements may hold the same signal as
// an input or output, and none of them owns it.
type Signal struct {
	mu       sync.Mutex
	state    bool
	watchers []func()
}

// NewSignal returns a signal holding the given initial state.
func NewSignal(state bool) *Signal {
	return &Signal{state: state}
}

// Get returns the current state.
func (s *Signal) Get() bool {
	s.mu.Lock()
	v := s.state
	s.mu.Unlock()
	return v
}

// Set stores v. The new state is visible to any concurrent reader the moment
// the lock is released.
func (s *Signal) Set(v bool) {
	s.mu.Lock()
	changed := s.state != v
	s.state = v
	ws := s.watchers
	s.mu.Unlock()
	if changed {
		for _, w := range ws {
			w()
		}
	}
}

// Toggle flips the current state.
func (s *Signal) Toggle() {
	s.mu.Lock()
	s.state = !s.state
	ws := s.watchers
	s.mu.Unlock()
	for _, w := range ws {
		w()
	}
}

func (s *Signal) String() string {
	if s.Get() {
		return "1"
	}
	return "0"
}

func (s *Signal) watch(fn func()) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}
