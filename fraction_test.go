package vabridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFractionReduce(t *testing.T) {
	t.Parallel()

	require.Equal(t, Fraction{16, 9}, Fraction{1920, 1080}.Reduce())
	require.Equal(t, Fraction{1, 1}, Fraction{7, 7}.Reduce())
	require.Equal(t, Fraction{-3, 2}, Fraction{-9, 6}.Reduce())
}

func TestFractionMul(t *testing.T) {
	t.Parallel()

	got, ok := Fraction{1920, 1080}.Mul(Fraction{1, 1})
	require.True(t, ok)
	require.Equal(t, Fraction{16, 9}, got)

	// Cross reduction keeps intermediate terms small.
	got, ok = Fraction{15, 11}.Mul(Fraction{480, 720})
	require.True(t, ok)
	require.Equal(t, Fraction{10, 11}, got)

	_, ok = Fraction{math.MaxInt32, 1}.Mul(Fraction{math.MaxInt32, 1})
	require.False(t, ok)
}

func TestFractionCmp(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Fraction{1, 2}.Cmp(Fraction{2, 4}))
	require.Equal(t, -1, Fraction{1, 3}.Cmp(Fraction{1, 2}))
	require.Equal(t, 1, Fraction{3, 2}.Cmp(Fraction{4, 3}))
}

func TestScaleRound(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(540), ScaleRound(960, 9, 16))
	require.Equal(t, uint64(655), ScaleRound(480, 15, 11)) // 654.54 rounds up
	require.Equal(t, uint64(281), ScaleRound(500, 9, 16))  // 281.25 rounds down
	require.Zero(t, ScaleRound(100, 1, 0))
}

func TestDisplayRatio(t *testing.T) {
	t.Parallel()

	// A 16:9 source shown on a 1280x1080 raster needs 3:2 pixels.
	par, ok := DisplayRatio(1920, 1080, Fraction{1, 1}, Fraction{1280, 1080})
	require.True(t, ok)
	require.Equal(t, Fraction{3, 2}, par)

	_, ok = DisplayRatio(math.MaxInt32, 1, Fraction{math.MaxInt32, 1}, Fraction{1, 1})
	require.False(t, ok)
}
