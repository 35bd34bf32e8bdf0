// Package siglib provides the standard circuit elements for sigsim:
// diode and triode primitives, the logic gate family, compound elements
// and function-backed sources and probes.
package siglib

import (
	"github.com/pkg/errors"

	"github.com/sigware/sigsim"
)

// An Op reduces a gate's input values, after per-input inversion, to a single
// output value.
type Op func(in []bool) bool

// AndOp is true when every input is true (vacuously true for no inputs).
func AndOp(in []bool) bool {
	for _, v := range in {
		if !v {
			return false
		}
	}
	return true
}

// OrOp is true when at least one input is true.
func OrOp(in []bool) bool {
	for _, v := range in {
		if v {
			return true
		}
	}
	return false
}

// XorOp is true when an odd number of inputs is true.
func XorOp(in []bool) bool {
	r := false
	for _, v := range in {
		r = r != v
	}
	return r
}

// PassOp forwards the first input unchanged.
func PassOp(in []bool) bool { return in[0] }

// A Gate is an N-input, single-output boolean element. Each input may carry
// an inversion flag applied before the core op, and the output may be
// inverted after it. One evaluation shape thus covers the whole gate family:
// NAND is AND with the output inverted, and so on.
type Gate struct {
	name   string
	op     Op
	ins    []sigsim.Bit
	out    sigsim.Bit
	inv    []bool
	outInv bool
	buf    []bool
}

// NewGate builds a gate around op. inv lists per-input inversion flags and
// may be nil for none; when given, it must match the input count. outInv
// inverts the op's result.
func NewGate(name string, op Op, ins []sigsim.Bit, out sigsim.Bit, inv []bool, outInv bool) (*Gate, error) {
	if op == nil {
		return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: nil op", name)
	}
	if len(ins) == 0 {
		return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: no inputs", name)
	}
	for _, in := range ins {
		if in == nil {
			return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: nil input", name)
		}
	}
	if out == nil {
		return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: nil output", name)
	}
	if inv != nil && len(inv) != len(ins) {
		return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: %d inversion flags for %d inputs",
			name, len(inv), len(ins))
	}
	if inv == nil {
		inv = make([]bool, len(ins))
	}
	return &Gate{
		name:   name,
		op:     op,
		ins:    append([]sigsim.Bit(nil), ins...),
		out:    out,
		inv:    append([]bool(nil), inv...),
		outInv: outInv,
		buf:    make([]bool, len(ins)),
	}, nil
}

func (g *Gate) Recompute() {
	for i, in := range g.ins {
		g.buf[i] = in.Get() != g.inv[i]
	}
	g.out.Set(g.op(g.buf) != g.outInv)
}

func (g *Gate) Inputs() []sigsim.Bit  { return g.ins }
func (g *Gate) Outputs() []sigsim.Bit { return []sigsim.Bit{g.out} }
func (g *Gate) String() string        { return g.name }

// And returns an AND gate: out = in[0] && in[1] && ...
func And(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("AND", AndOp, ins, out, nil, false)
}

// Nand returns a NAND gate: out = !(in[0] && in[1] && ...)
func Nand(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("NAND", AndOp, ins, out, nil, true)
}

// Or returns an OR gate: out = in[0] || in[1] || ...
func Or(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("OR", OrOp, ins, out, nil, false)
}

// Nor returns a NOR gate: out = !(in[0] || in[1] || ...)
func Nor(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("NOR", OrOp, ins, out, nil, true)
}

// Xor returns a XOR gate: out is true for an odd number of true inputs.
func Xor(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("XOR", XorOp, ins, out, nil, false)
}

// Xnor returns a XNOR gate: out is true for an even number of true inputs.
func Xnor(ins []sigsim.Bit, out sigsim.Bit) (*Gate, error) {
	return NewGate("XNOR", XorOp, ins, out, nil, true)
}

// Buffer returns a single-input pass-through gate: out = in.
func Buffer(in, out sigsim.Bit) (*Gate, error) {
	return NewGate("BUF", PassOp, []sigsim.Bit{in}, out, nil, false)
}

// A Not is the degenerate single-input gate, kept as its own minimal type
// rather than going through the generalized Gate path.
type Not struct {
	in, out sigsim.Bit
}

// NewNot returns a NOT gate: out = !in.
func NewNot(in, out sigsim.Bit) (*Not, error) {
	if in == nil || out == nil {
		return nil, errors.Wrap(sigsim.ErrBadWiring, "NOT: nil terminal")
	}
	return &Not{in: in, out: out}, nil
}

func (n *Not) Recompute()            { n.out.Set(!n.in.Get()) }
func (n *Not) Inputs() []sigsim.Bit  { return []sigsim.Bit{n.in} }
func (n *Not) Outputs() []sigsim.Bit { return []sigsim.Bit{n.out} }
func (n *Not) String() string        { return "NOT" }
