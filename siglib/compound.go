package siglib

import (
	"github.com/pkg/errors"

	"github.com/sigware/sigsim"
)

// A Compound packages sub-elements sharing internal signals into a single
// element. Recompute evaluates the parts in the order given, so listing
// parts in dependency order lets an acyclic compound settle in one step.
//
// An AND gate built from two triodes and a pull-up:
//
//	high := sigsim.NewSignal(true)
//	mid := sigsim.NewSignal(false)
//	t1, _ := siglib.NewTriode(high, a, mid)
//	t2, _ := siglib.NewTriode(mid, b, out)
//	and, _ := siglib.NewCompound("AND2T",
//		[]sigsim.Bit{a, b}, []sigsim.Bit{out}, t1, t2)
type Compound struct {
	name      string
	ins, outs []sigsim.Bit
	parts     []sigsim.Element
}

// NewCompound builds a compound element. ins and outs declare its external
// interface; signals used only between parts stay internal.
func NewCompound(name string, ins, outs []sigsim.Bit, parts ...sigsim.Element) (*Compound, error) {
	if len(parts) == 0 {
		return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: empty part list", name)
	}
	for _, p := range parts {
		if p == nil {
			return nil, errors.Wrapf(sigsim.ErrBadWiring, "%s: nil part", name)
		}
	}
	return &Compound{name: name, ins: ins, outs: outs, parts: parts}, nil
}

func (c *Compound) Recompute() {
	for _, p := range c.parts {
		p.Recompute()
	}
}

func (c *Compound) Inputs() []sigsim.Bit  { return c.ins }
func (c *Compound) Outputs() []sigsim.Bit { return c.outs }
func (c *Compound) String() string        { return c.name }
