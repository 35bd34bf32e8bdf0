// Package sigtest provides utility functions for testing circuits.
package sigtest

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/sigware/sigsim"
)

const settleTimeout = 5 * time.Second

// Settle waits for the engine to go quiescent and fails the test on timeout
// or non-convergence.
func Settle(t *testing.T, g *sigsim.Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	if err := g.Settle(ctx); err != nil {
		t.Fatal(err)
	}
}

// TruthTable drives ins through every input combination and checks out
// against want. Pattern i is read MSB-first from ins[0], matching the vector
// integer encoding, so want[i] is the expected output for that pattern.
func TruthTable(t *testing.T, e sigsim.Element, ins []*sigsim.Signal, out *sigsim.Signal, want []bool) {
	t.Helper()

	if len(want) != 1<<uint(len(ins)) {
		t.Fatalf("want %d table entries for %d inputs, got %d", 1<<uint(len(ins)), len(ins), len(want))
	}
	g := sigsim.NewEngine()
	if err := g.Add(e); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = g.Stop() }()

	for i := 0; i < len(want); i++ {
		setPattern(ins, i)
		Settle(t, g)
		if got := out.Get(); got != want[i] {
			t.Errorf("%v %s = %v, got %v", e, pattern(ins), want[i], got)
		}
	}
}

// Compare drives elements a and b with identical inputs and fails on any
// divergence between aOut and bOut. Both elements must implement the same
// boolean function over ins. Input coverage is exhaustive up to 12 inputs,
// randomized above that.
func Compare(t *testing.T, a, b sigsim.Element, ins []*sigsim.Signal, aOut, bOut *sigsim.Signal) {
	t.Helper()

	g := sigsim.NewEngine()
	if err := g.Add(a, b); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = g.Stop() }()

	check := func() {
		t.Helper()
		Settle(t, g)
		av, bv := aOut.Get(), bOut.Get()
		if av != bv {
			t.Fatalf("\n%s: %v = %v\n%s: %v = %v", a, pattern(ins), av, b, pattern(ins), bv)
		}
	}

	// all zeros, then all ones
	setPattern(ins, 0)
	check()
	for _, in := range ins {
		in.Set(true)
	}
	check()

	if n := len(ins); n <= 12 {
		for i := 0; i < 1<<uint(n); i++ {
			setPattern(ins, i)
			check()
		}
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1<<12; i++ {
		for _, in := range ins {
			in.Set(rng.Int63()&(1<<62) != 0)
		}
		check()
	}
}

// setPattern writes pattern i to ins, MSB first.
func setPattern(ins []*sigsim.Signal, i int) {
	for bit := range ins {
		ins[len(ins)-bit-1].Set(i&(1<<uint(bit)) != 0)
	}
}

func pattern(ins []*sigsim.Signal) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, in := range ins {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", in.Get())
	}
	b.WriteByte(']')
	return b.String()
}
