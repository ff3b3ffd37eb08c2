package vpp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwpipe/vabridge"
)

var allFormats = []vabridge.PixelFormat{
	vabridge.FormatNV12, vabridge.FormatNV21, vabridge.FormatI420,
	vabridge.FormatYV12, vabridge.FormatYUY2, vabridge.FormatUYVY,
	vabridge.FormatY42B, vabridge.FormatY41B, vabridge.FormatY444,
	vabridge.FormatAYUV, vabridge.FormatVUYA, vabridge.FormatP010,
	vabridge.FormatGRAY8, vabridge.FormatRGBA, vabridge.FormatBGRA,
	vabridge.FormatARGB, vabridge.FormatABGR, vabridge.FormatRGBx,
	vabridge.FormatBGRx, vabridge.FormatRGB16, vabridge.FormatRGB8P,
}

func TestScoreIdentityIsZero(t *testing.T) {
	t.Parallel()

	for _, f := range allFormats {
		require.Zero(t, Score(f, f), "format %s", f)
	}
}

func TestScoreNonNegative(t *testing.T) {
	t.Parallel()

	for _, in := range allFormats {
		for _, out := range allFormats {
			require.GreaterOrEqual(t, Score(in, out), 0, "%s -> %s", in, out)
		}
	}
}

func TestScoreGrayIsWorst(t *testing.T) {
	t.Parallel()

	// Dropping to monochrome is costlier than any same-class
	// conversion from the same input.
	for _, in := range allFormats {
		if in == vabridge.FormatGRAY8 {
			continue
		}
		gray := Score(in, vabridge.FormatGRAY8)
		for _, out := range allFormats {
			if out == vabridge.FormatGRAY8 || out == in {
				continue
			}
			if out.Info().Flags&vabridge.FlagGray != 0 {
				continue
			}
			require.GreaterOrEqual(t, gray, Score(in, out), "%s: gray vs %s", in, out)
		}
	}
}

func TestScorePenalties(t *testing.T) {
	t.Parallel()

	// Losing bit depth costs more than gaining it.
	require.Greater(t,
		Score(vabridge.FormatP010, vabridge.FormatNV12),
		Score(vabridge.FormatNV12, vabridge.FormatP010))

	// Losing alpha costs more than gaining it.
	require.Greater(t,
		Score(vabridge.FormatAYUV, vabridge.FormatNV12),
		Score(vabridge.FormatNV12, vabridge.FormatAYUV))

	// Losing chroma resolution costs more than gaining it.
	require.Greater(t,
		Score(vabridge.FormatY444, vabridge.FormatNV12),
		Score(vabridge.FormatNV12, vabridge.FormatY444))

	// A layout-only difference is cheaper than a colorspace switch.
	require.Less(t,
		Score(vabridge.FormatNV12, vabridge.FormatI420),
		Score(vabridge.FormatNV12, vabridge.FormatRGBA))
}

func TestSelectBest(t *testing.T) {
	t.Parallel()

	// Identical format wins immediately, whatever comes before it.
	got := SelectBest(vabridge.FormatNV12,
		[]vabridge.PixelFormat{vabridge.FormatI420, vabridge.FormatNV12})
	require.Equal(t, vabridge.FormatNV12, got)

	// First minimal score wins; an equal later candidate does not
	// replace it.
	got = SelectBest(vabridge.FormatNV12,
		[]vabridge.PixelFormat{vabridge.FormatI420, vabridge.FormatNV21})
	require.Equal(t, vabridge.FormatI420, got)

	// Lossless beats lossy.
	got = SelectBest(vabridge.FormatP010,
		[]vabridge.PixelFormat{vabridge.FormatNV12, vabridge.FormatY444, vabridge.FormatGRAY8})
	require.NotEqual(t, vabridge.FormatGRAY8, got)

	require.Equal(t, vabridge.FormatUnknown, SelectBest(vabridge.FormatNV12, nil))
}
