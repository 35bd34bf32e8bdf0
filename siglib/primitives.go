package siglib

import (
	"github.com/pkg/errors"

	"github.com/sigware/sigsim"
)

// A Diode forwards its anode state to its cathode: a one-directional,
// ungated pass-through. Writing the cathode directly has no effect on the
// anode and is overwritten by the next evaluation step.
type Diode struct {
	anode, cathode sigsim.Bit
}

// NewDiode returns a diode wired from anode to cathode.
func NewDiode(anode, cathode sigsim.Bit) (*Diode, error) {
	if anode == nil || cathode == nil {
		return nil, errors.Wrap(sigsim.ErrBadWiring, "diode: nil terminal")
	}
	return &Diode{anode: anode, cathode: cathode}, nil
}

func (d *Diode) Recompute()            { d.cathode.Set(d.anode.Get()) }
func (d *Diode) Inputs() []sigsim.Bit  { return []sigsim.Bit{d.anode} }
func (d *Diode) Outputs() []sigsim.Bit { return []sigsim.Bit{d.cathode} }
func (d *Diode) String() string        { return "DIODE" }

// A Triode is a gated pass-through, the universal switch primitive: while
// base is high, the emitter state flows to the collector; while base is low,
// the collector is driven low regardless of the emitter.
type Triode struct {
	emitter, base, collector sigsim.Bit
}

// NewTriode returns a triode. Emitter and base are inputs, collector is the
// sole output.
func NewTriode(emitter, base, collector sigsim.Bit) (*Triode, error) {
	if emitter == nil || base == nil || collector == nil {
		return nil, errors.Wrap(sigsim.ErrBadWiring, "triode: nil terminal")
	}
	return &Triode{emitter: emitter, base: base, collector: collector}, nil
}

func (t *Triode) Recompute() {
	if t.base.Get() {
		t.collector.Set(t.emitter.Get())
	} else {
		t.collector.Set(false)
	}
}

func (t *Triode) Inputs() []sigsim.Bit  { return []sigsim.Bit{t.emitter, t.base} }
func (t *Triode) Outputs() []sigsim.Bit { return []sigsim.Bit{t.collector} }
func (t *Triode) String() string        { return "TRIODE" }
