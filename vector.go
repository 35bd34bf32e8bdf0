package sigsim

import (
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// A Vector is an ordered, fixed-length sequence of boolean cells guarded by a
// single lock. The coarse lock makes whole-vector reads (Uint64) atomic with
// respect to per-index writes, at the cost of serializing access to all
// cells. Index 0 is the most significant bit of the integer encoding.
type Vector struct {
	mu       sync.Mutex
	states   []bool
	watchers [][]func()
}

// NewVector returns a zeroed vector of length n.
func NewVector(n int) *Vector {
	return &Vector{states: make([]bool, n), watchers: make([][]func(), n)}
}

// VectorOf returns a vector initialized with the given states, index 0 first.
func VectorOf(states ...bool) *Vector {
	v := NewVector(len(states))
	copy(v.states, states)
	return v
}

// Len returns the declared length. The length is fixed at construction.
func (v *Vector) Len() int {
	return len(v.states)
}

// Get returns the state of cell i.
func (v *Vector) Get(i int) (bool, error) {
	if i < 0 || i >= len(v.states) {
		return false, errors.Wrapf(ErrOutOfRange, "vector index %d, length %d", i, len(v.states))
	}
	v.mu.Lock()
	s := v.states[i]
	v.mu.Unlock()
	return s, nil
}

// Set stores s into cell i.
func (v *Vector) Set(i int, s bool) error {
	if i < 0 || i >= len(v.states) {
		return errors.Wrapf(ErrOutOfRange, "vector index %d, length %d", i, len(v.states))
	}
	v.mu.Lock()
	changed := v.states[i] != s
	v.states[i] = s
	ws := v.watchers[i]
	v.mu.Unlock()
	if changed {
		for _, w := range ws {
			w()
		}
	}
	return nil
}

// At returns an addressable view of cell i that satisfies Bit, sharing the
// vector's lock. The view stays valid for the lifetime of the vector and can
// be wired into elements like a standalone signal.
func (v *Vector) At(i int) (Bit, error) {
	if i < 0 || i >= len(v.states) {
		return nil, errors.Wrapf(ErrOutOfRange, "vector index %d, length %d", i, len(v.states))
	}
	return &cell{vec: v, idx: i}, nil
}

// Uint64 returns the vector contents as an unsigned integer, cell 0 being the
// most significant bit, reading all cells under one lock acquisition. An
// empty vector encodes to 0. Vectors wider than 64 bits cannot be encoded.
func (v *Vector) Uint64() (uint64, error) {
	if len(v.states) > 64 {
		return 0, errors.Wrapf(ErrOutOfRange, "vector width %d exceeds 64 bits", len(v.states))
	}
	var x uint64
	v.mu.Lock()
	for _, s := range v.states {
		x <<= 1
		if s {
			x |= 1
		}
	}
	v.mu.Unlock()
	return x, nil
}

// SetUint64 stores x into the vector, cell 0 receiving the most significant
// bit. Values wider than the vector cannot be stored.
func (v *Vector) SetUint64(x uint64) error {
	n := len(v.states)
	if n > 64 {
		return errors.Wrapf(ErrOutOfRange, "vector width %d exceeds 64 bits", n)
	}
	if n < 64 && x>>uint(n) != 0 {
		return errors.Wrapf(ErrOutOfRange, "value %d does not fit in %d bits", x, n)
	}
	var fire []func()
	v.mu.Lock()
	for i := 0; i < n; i++ {
		s := x&(1<<uint(n-1-i)) != 0
		if v.states[i] != s {
			v.states[i] = s
			fire = append(fire, v.watchers[i]...)
		}
	}
	v.mu.Unlock()
	for _, w := range fire {
		w()
	}
	return nil
}

func (v *Vector) String() string {
	var b strings.Builder
	v.mu.Lock()
	for _, s := range v.states {
		if s {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	v.mu.Unlock()
	return b.String()
}

// cell is the Bit view of a single vector index. Bounds are checked once, in
// Vector.At.
type cell struct {
	vec *Vector
	idx int
}

func (c *cell) Get() bool {
	c.vec.mu.Lock()
	s := c.vec.states[c.idx]
	c.vec.mu.Unlock()
	return s
}

func (c *cell) Set(v bool) {
	// Set on the parent re-checks bounds, which cannot fail here.
	_ = c.vec.Set(c.idx, v)
}

func (c *cell) watch(fn func()) {
	c.vec.mu.Lock()
	c.vec.watchers[c.idx] = append(c.vec.watchers[c.idx], fn)
	c.vec.mu.Unlock()
}

func (c *cell) String() string {
	return "bit " + strconv.Itoa(c.idx) + " of " + c.vec.String()
}
