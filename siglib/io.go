package siglib

import (
	"github.com/pkg/errors"

	"github.com/sigware/sigsim"
)

// A Source drives a signal from a callback on every evaluation step. A
// source has no input signals, so an Engine cannot watch it; re-read the
// callback with Engine.Kick, or drive the source with a busy-poll loop.
type Source struct {
	out sigsim.Bit
	fn  func() bool
}

// NewSource returns a source writing fn() to out.
func NewSource(out sigsim.Bit, fn func() bool) (*Source, error) {
	if out == nil || fn == nil {
		return nil, errors.Wrap(sigsim.ErrBadWiring, "source: nil output or func")
	}
	return &Source{out: out, fn: fn}, nil
}

func (s *Source) Recompute()            { s.out.Set(s.fn()) }
func (s *Source) Inputs() []sigsim.Bit  { return nil }
func (s *Source) Outputs() []sigsim.Bit { return []sigsim.Bit{s.out} }

// A Probe calls a callback with a signal's state on every evaluation step.
type Probe struct {
	in sigsim.Bit
	fn func(bool)
}

// NewProbe returns a probe observing in.
func NewProbe(in sigsim.Bit, fn func(bool)) (*Probe, error) {
	if in == nil || fn == nil {
		return nil, errors.Wrap(sigsim.ErrBadWiring, "probe: nil input or func")
	}
	return &Probe{in: in, fn: fn}, nil
}

func (p *Probe) Recompute()            { p.fn(p.in.Get()) }
func (p *Probe) Inputs() []sigsim.Bit  { return []sigsim.Bit{p.in} }
func (p *Probe) Outputs() []sigsim.Bit { return nil }
