package dlmm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinArrayContains(t *testing.T) {
	a := BinArray{Index: 2}
	require.True(t, a.Contains(2*BinArraySize))
	require.True(t, a.Contains(2*BinArraySize+BinArraySize-1))
	require.False(t, a.Contains(3*BinArraySize))
}

func TestBinArrayGetBinOutOfRange(t *testing.T) {
	a := BinArray{Index: 0}
	_, err := a.GetBin(BinArraySize)
	require.ErrorIs(t, err, ErrBinNotFound)
}

func TestMergeBinArraysRejectsNonAdjacent(t *testing.T) {
	lower := BinArray{Index: 0}
	upper := BinArray{Index: 2}
	_, err := MergeBinArrays(lower, upper)
	require.ErrorIs(t, err, ErrBinArrayIndexMismatch)
}

func TestBinArrayPairGetBinCrossesBoundary(t *testing.T) {
	lower := BinArray{Index: 0}
	upper := BinArray{Index: 1}
	lower.Bins[BinArraySize-1].ReserveX = 42
	upper.Bins[0].ReserveX = 7

	pair, err := MergeBinArrays(lower, upper)
	require.NoError(t, err)

	b, err := pair.GetBin(BinArraySize - 1)
	require.NoError(t, err)
	require.Equal(t, uint64(42), b.ReserveX)

	b, err = pair.GetBin(BinArraySize)
	require.NoError(t, err)
	require.Equal(t, uint64(7), b.ReserveX)
}

func TestBinArrayPairMutatesUnderlyingArray(t *testing.T) {
	lower := BinArray{Index: 0}
	upper := BinArray{Index: 1}
	pair, err := MergeBinArrays(lower, upper)
	require.NoError(t, err)

	b, err := pair.GetBin(0)
	require.NoError(t, err)
	b.ReserveX = 100

	b2, err := pair.GetBin(0)
	require.NoError(t, err)
	require.Equal(t, uint64(100), b2.ReserveX)
}
