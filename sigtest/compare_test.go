package sigtest_test

import (
	"testing"

	"github.com/sigware/sigsim"
	"github.com/sigware/sigsim/siglib"
	"github.com/sigware/sigsim/sigtest"
)

func TestCompare(t *testing.T) {
	// a NOT gate against a pass gate with the output inverted
	in := sigsim.NewSignal(false)
	aOut := sigsim.NewSignal(false)
	bOut := sigsim.NewSignal(false)

	not, err := siglib.NewNot(in, aOut)
	if err != nil {
		t.Fatal(err)
	}
	inv, err := siglib.NewGate("INVBUF", siglib.PassOp, []sigsim.Bit{in}, bOut, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	sigtest.Compare(t, not, inv, []*sigsim.Signal{in}, aOut, bOut)
}

func TestTruthTable(t *testing.T) {
	a := sigsim.NewSignal(false)
	b := sigsim.NewSignal(false)
	out := sigsim.NewSignal(false)
	nand, err := siglib.Nand([]sigsim.Bit{a, b}, out)
	if err != nil {
		t.Fatal(err)
	}
	sigtest.TruthTable(t, nand, []*sigsim.Signal{a, b}, out, []bool{true, true, true, false})
}
