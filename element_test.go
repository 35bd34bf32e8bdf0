package sigsim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sigware/sigsim"
	"github.com/sigware/sigsim/siglib"
)

// waitFor polls cond until it holds or the timeout expires. Busy-poll
// propagation has no ordering guarantee, only eventual consistency.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("circuit did not reach the expected state")
}

func TestBusyPollDiode(t *testing.T) {
	anode := sigsim.NewSignal(false)
	cathode := sigsim.NewSignal(false)
	d, err := siglib.NewDiode(anode, cathode)
	require.NoError(t, err)

	h := sigsim.Start(context.Background(), d)
	defer h.Stop()

	anode.Set(true)
	waitFor(t, time.Second, cathode.Get)
	anode.Set(false)
	waitFor(t, time.Second, func() bool { return !cathode.Get() })

	// writes to the cathode do not feed back; the loop overwrites them
	anode.Set(true)
	waitFor(t, time.Second, cathode.Get)
	cathode.Set(false)
	waitFor(t, time.Second, cathode.Get)
	require.True(t, anode.Get())
}

func TestBusyPollChain(t *testing.T) {
	// and gate scenario from the package docs, driven by two chained triodes
	high := sigsim.NewSignal(true)
	ibit1 := sigsim.NewSignal(false)
	ibit2 := sigsim.NewSignal(false)
	tmpbit := sigsim.NewSignal(false)
	obit := sigsim.NewSignal(false)

	tri1, err := siglib.NewTriode(high, ibit1, tmpbit)
	require.NoError(t, err)
	tri2, err := siglib.NewTriode(tmpbit, ibit2, obit)
	require.NoError(t, err)

	h1 := sigsim.Start(context.Background(), tri1)
	h2 := sigsim.Start(context.Background(), tri2)
	defer h1.Stop()
	defer h2.Stop()

	time.Sleep(10 * time.Millisecond)
	require.False(t, obit.Get())

	ibit1.Set(true)
	time.Sleep(10 * time.Millisecond)
	require.False(t, obit.Get())

	ibit2.Set(true)
	waitFor(t, time.Second, obit.Get)
}

func TestHandleStop(t *testing.T) {
	in := sigsim.NewSignal(false)
	out := sigsim.NewSignal(false)
	d, err := siglib.NewDiode(in, out)
	require.NoError(t, err)

	h := sigsim.Start(context.Background(), d)
	h.Stop()
	select {
	case <-h.Done():
	default:
		t.Fatal("loop still running after Stop")
	}

	// a stopped element produces no effects
	in.Set(true)
	time.Sleep(10 * time.Millisecond)
	require.False(t, out.Get())
}

func TestStartParentCancel(t *testing.T) {
	in := sigsim.NewSignal(false)
	out := sigsim.NewSignal(false)
	d, err := siglib.NewDiode(in, out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h := sigsim.Start(ctx, d)
	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on context cancellation")
	}
}
