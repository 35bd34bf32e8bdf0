package sigsim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigware/sigsim"
)

func TestVectorGetSet(t *testing.T) {
	v := sigsim.NewVector(4)
	require.Equal(t, 4, v.Len())

	require.NoError(t, v.Set(2, true))
	got, err := v.Get(2)
	require.NoError(t, err)
	require.True(t, got)

	got, err = v.Get(0)
	require.NoError(t, err)
	require.False(t, got)
}

func TestVectorOutOfRange(t *testing.T) {
	v := sigsim.NewVector(4)

	_, err := v.Get(5)
	require.ErrorIs(t, err, sigsim.ErrOutOfRange)
	require.ErrorIs(t, v.Set(5, true), sigsim.ErrOutOfRange)
	_, err = v.Get(-1)
	require.ErrorIs(t, err, sigsim.ErrOutOfRange)
	_, err = v.At(4)
	require.ErrorIs(t, err, sigsim.ErrOutOfRange)
}

func TestVectorUint64(t *testing.T) {
	// states [1,0,1,1], index 0 the MSB, encode to 11
	v := sigsim.VectorOf(true, false, true, true)
	n, err := v.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(11), n)
	require.Equal(t, "1011", v.String())
}

func TestVectorUint64Empty(t *testing.T) {
	n, err := sigsim.NewVector(0).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)
}

func TestVectorUint64TooWide(t *testing.T) {
	v := sigsim.NewVector(65)
	_, err := v.Uint64()
	require.ErrorIs(t, err, sigsim.ErrOutOfRange)
	require.ErrorIs(t, v.SetUint64(1), sigsim.ErrOutOfRange)
}

func TestVectorSetUint64(t *testing.T) {
	v := sigsim.NewVector(8)
	require.NoError(t, v.SetUint64(0xa5))
	n, err := v.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0xa5), n)

	// value wider than the vector
	require.ErrorIs(t, sigsim.NewVector(4).SetUint64(16), sigsim.ErrOutOfRange)
}

func TestVectorRoundTrip(t *testing.T) {
	v := sigsim.NewVector(6)
	for x := uint64(0); x < 64; x++ {
		require.NoError(t, v.SetUint64(x))
		n, err := v.Uint64()
		require.NoError(t, err)
		require.Equal(t, x, n)
	}
}

func TestVectorAt(t *testing.T) {
	v := sigsim.NewVector(4)
	b, err := v.At(1)
	require.NoError(t, err)

	b.Set(true)
	got, err := v.Get(1)
	require.NoError(t, err)
	require.True(t, got)

	require.NoError(t, v.Set(1, false))
	require.False(t, b.Get())
}
