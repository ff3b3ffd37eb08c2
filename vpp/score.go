// Package vpp implements the negotiation engine of the hardware
// post-processing path: loss-based output format selection, aspect
// preserving size fixation, and the concurrently mutated filter
// property set that drives per-frame filter buffer rebuilds.
package vpp

import (
	"math"

	"github.com/hwpipe/vabridge"
)

// Conversion penalties. Every differing property axis costs one change
// point; an axis change that loses information adds the larger loss on
// top, so lossy candidates sink below merely different ones.
const (
	scoreFormatChange  = 1
	scoreDepthChange   = 1
	scoreAlphaChange   = 1
	scoreChromaWChange = 1
	scoreChromaHChange = 1
	scorePaletteChange = 1

	scoreColorspaceLoss = 2
	scoreDepthLoss      = 4
	scoreAlphaLoss      = 8
	scoreChromaWLoss    = 16
	scoreChromaHLoss    = 32
	scorePaletteLoss    = 64
	scoreColorLoss      = 128
)

const (
	colorMask   = vabridge.FlagYUV | vabridge.FlagRGB | vabridge.FlagGray
	alphaMask   = vabridge.FlagAlpha
	paletteMask = vabridge.FlagPalette

	// Layout-only flags, irrelevant for conversion loss.
	ignoreMask = vabridge.FlagLE | vabridge.FlagComplex
)

// Score rates a conversion from in to candidate; lower is better and
// zero means the formats are identical.
func Score(in, candidate vabridge.PixelFormat) int {
	if in == candidate {
		return 0
	}

	inInfo := in.Info()
	cInfo := candidate.Info()
	inFlags := inInfo.Flags &^ ignoreMask
	cFlags := cInfo.Flags &^ ignoreMask

	loss := scoreFormatChange

	if cFlags&paletteMask != inFlags&paletteMask {
		loss += scorePaletteChange
		if cFlags&paletteMask != 0 {
			loss += scorePaletteLoss
		}
	}

	if cFlags&colorMask != inFlags&colorMask {
		loss += scoreColorspaceLoss
		if cFlags&vabridge.FlagGray != 0 {
			loss += scoreColorLoss
		}
	}

	if cFlags&alphaMask != inFlags&alphaMask {
		loss += scoreAlphaChange
		if inFlags&alphaMask != 0 {
			loss += scoreAlphaLoss
		}
	}

	if inInfo.ChromaHSub != cInfo.ChromaHSub {
		loss += scoreChromaHChange
		if inInfo.ChromaHSub < cInfo.ChromaHSub {
			loss += scoreChromaHLoss
		}
	}

	if inInfo.ChromaWSub != cInfo.ChromaWSub {
		loss += scoreChromaWChange
		if inInfo.ChromaWSub < cInfo.ChromaWSub {
			loss += scoreChromaWLoss
		}
	}

	if inInfo.Bits != cInfo.Bits {
		loss += scoreDepthChange
		if inInfo.Bits > cInfo.Bits {
			loss += scoreDepthLoss
		}
	}

	return loss
}

// SelectBest picks the cheapest conversion target among candidates. An
// identical format wins immediately; otherwise the first candidate
// with the minimal score is kept, later ties do not replace it.
// FormatUnknown is returned for an empty candidate list.
func SelectBest(in vabridge.PixelFormat, candidates []vabridge.PixelFormat) vabridge.PixelFormat {
	best := vabridge.FormatUnknown
	minLoss := math.MaxInt

	for _, c := range candidates {
		if c == in {
			return in
		}
		if loss := Score(in, c); loss < minLoss {
			minLoss = loss
			best = c
		}
	}

	return best
}
