package vabridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelFormatInfo(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NV12", FormatNV12.String())
	require.Equal(t, "P010_10LE", FormatP010.String())
	require.Equal(t, uint8(10), FormatP010.Info().Bits)
	require.NotZero(t, FormatGRAY8.Info().Flags&FlagGray)
	require.NotZero(t, FormatRGB8P.Info().Flags&FlagPalette)

	// Every declared format has a table entry.
	for f := FormatUnknown; f <= FormatRGB8P; f++ {
		require.NotEmpty(t, f.Info().Name, "format %d", f)
	}

	require.Equal(t, "UNKNOWN", PixelFormat(200).String())
}

func TestOrientationSwapsDimensions(t *testing.T) {
	t.Parallel()

	swaps := []Orientation{Orient90R, Orient90L, OrientULLR, OrientURLL}
	for _, o := range swaps {
		require.True(t, o.SwapsDimensions(), o.String())
	}

	keeps := []Orientation{OrientIdentity, Orient180, OrientHorizFlip, OrientVertFlip, OrientAuto}
	for _, o := range keeps {
		require.False(t, o.SwapsDimensions(), o.String())
	}
}
