package vpp

import (
	"math"

	"github.com/pkg/errors"

	"github.com/hwpipe/vabridge"
	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/utils/logger"
)

// Direction tells which side of the converter is being fixated.
type Direction uint8

// Fixation directions.
const (
	// Downstream fixates the output geometry of a known input.
	Downstream Direction = iota
	// Upstream fixates the input geometry of a requested output.
	Upstream
)

// Geometry is a fully fixed frame geometry.
type Geometry struct {
	Width  int
	Height int
	PAR    vabridge.Fraction
}

// IntConstraint is one integer field of a negotiation target: either
// pinned to Value or free within [Min, Max]. Zero bounds mean the full
// positive range.
type IntConstraint struct {
	Fixed bool
	Value int
	Min   int
	Max   int
}

// Nearest returns the acceptable value closest to v.
func (c IntConstraint) Nearest(v int) int {
	if c.Fixed {
		return c.Value
	}
	lo, hi := c.Min, c.Max
	if lo == 0 {
		lo = 1
	}
	if hi == 0 {
		hi = math.MaxInt32
	}
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// fixateNearest pins a free field to the nearest acceptable value.
// Already fixed fields keep their value.
func (c *IntConstraint) fixateNearest(v int) int {
	if !c.Fixed {
		*c = IntConstraint{Fixed: true, Value: c.Nearest(v)}
	}
	return c.Value
}

func (c *IntConstraint) set(v int) {
	*c = IntConstraint{Fixed: true, Value: v}
}

// ParConstraint is the pixel-aspect-ratio field of a negotiation
// target. Present is false when the target carries no PAR field at
// all; zero Min/Max mean the full positive range.
type ParConstraint struct {
	Present bool
	Fixed   bool
	Value   vabridge.Fraction
	Min     vabridge.Fraction
	Max     vabridge.Fraction
}

// Nearest returns the acceptable fraction closest to f.
func (c ParConstraint) Nearest(f vabridge.Fraction) vabridge.Fraction {
	if c.Fixed {
		return c.Value
	}
	if c.Min.Den != 0 && f.Cmp(c.Min) < 0 {
		return c.Min
	}
	if c.Max.Den != 0 && f.Cmp(c.Max) > 0 {
		return c.Max
	}
	return f
}

func (c *ParConstraint) fixateNearest(f vabridge.Fraction) vabridge.Fraction {
	if !c.Fixed {
		v := c.Nearest(f)
		*c = ParConstraint{Present: true, Fixed: true, Value: v}
	}
	return c.Value
}

func (c *ParConstraint) set(f vabridge.Fraction) {
	*c = ParConstraint{Present: true, Fixed: true, Value: f}
}

// SizeConstraint is the target side of a size fixation.
type SizeConstraint struct {
	Width  IntConstraint
	Height IntConstraint
	PAR    ParConstraint
}

// geometryTag prefixes the fixation logs.
const geometryTag = "vpp"

// FixateSize turns a partially constrained target geometry into a
// fully fixed one, preserving the source's display aspect ratio where
// the constraints allow and drifting as little as possible where they
// do not. The active orientation is compensated so the preserved ratio
// is the displayed one. A numeric overflow voids the whole attempt.
func FixateSize(dir Direction, src Geometry, target SizeConstraint,
	orient vabridge.Orientation) (Geometry, error) {
	out := target

	// A missing PAR field means square pixels on the input side. On
	// the output side it is undefined when fixating downstream and
	// pinned square when fixating upstream.
	if !out.PAR.Present {
		if dir == Downstream {
			out.PAR = ParConstraint{
				Min: vabridge.Fraction{Num: 1, Den: math.MaxInt32},
				Max: vabridge.Fraction{Num: math.MaxInt32, Den: 1},
			}
		} else {
			out.PAR = ParConstraint{
				Present: true,
				Fixed:   true,
				Value:   vabridge.Fraction{Num: 1, Den: 1},
			}
		}
	}

	fromW, fromH := src.Width, src.Height
	fromPar := src.PAR

	var w, h int
	if out.Width.Fixed {
		w = out.Width.Value
	}
	if out.Height.Fixed {
		h = out.Height.Value
	}

	if orient.SwapsDimensions() {
		switch dir {
		case Downstream:
			fromW, fromH = fromH, fromW
			fromPar = vabridge.Fraction{Num: fromPar.Den, Den: fromPar.Num}
		case Upstream:
			w, h = h, w // square output PAR needs no swap
		}
	}

	// Both dimensions pinned: only the PAR may still need deriving.
	if w != 0 && h != 0 {
		logger.Debugf(geometryTag, "dimensions already set to %dx%d, not fixating", w, h)
		if !out.PAR.Fixed {
			if par, ok := vabridge.DisplayRatio(fromW, fromH, fromPar,
				vabridge.Fraction{Num: w, Den: h}); ok {
				if out.PAR.Present {
					out.PAR.fixateNearest(par)
				} else if par.Num != par.Den {
					out.PAR.set(par)
				}
			}
		}
		return fixed(&out, src), nil
	}

	dar, ok := (vabridge.Fraction{Num: fromW, Den: fromH}).Mul(fromPar)
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	logger.Debugf(geometryTag, "input DAR is %s", dar)

	switch {
	case h != 0:
		return fixateFromHeight(&out, src, dar, fromW, h)
	case w != 0:
		return fixateFromWidth(&out, src, dar, fromH, w)
	case out.PAR.Fixed:
		return fixateFromPAR(&out, src, dar, fromW, fromH)
	default:
		return fixateUnconstrained(&out, src, dar, fromW, fromH)
	}
}

// fixateFromHeight picks a width (and PAR when free) for a pinned
// output height.
func fixateFromHeight(out *SizeConstraint, src Geometry, dar vabridge.Fraction,
	fromW, h int) (Geometry, error) {
	logger.Debugf(geometryTag, "height is fixed (%d)", h)

	// Pinned PAR leaves only the DAR-preserving width, snapped to the
	// nearest acceptable value.
	if out.PAR.Fixed {
		toPar := out.PAR.Value
		f, ok := dar.Mul(vabridge.Fraction{Num: toPar.Den, Den: toPar.Num})
		if !ok {
			return Geometry{}, errors.WithStack(utils.OverflowError{})
		}
		w := int(vabridge.ScaleRound(uint64(h), uint64(f.Num), uint64(f.Den)))
		out.Width.fixateNearest(w)
		return fixed(out, src), nil
	}

	// Free PAR: try keeping the input width and bending the PAR to
	// preserve the DAR.
	tmp := *out
	setW := tmp.Width.fixateNearest(fromW)
	toPar, ok := dar.Mul(vabridge.Fraction{Num: h, Den: setW})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	setPar := tmp.PAR.fixateNearest(toPar)

	if setPar == toPar {
		if out.PAR.Present || setPar.Num != setPar.Den {
			out.Width.set(setW)
			out.PAR.set(setPar)
		}
		return fixed(out, src), nil
	}

	// The bent PAR was rejected; scale the width to the PAR that was
	// accepted instead, giving up on the exact DAR.
	f, ok := dar.Mul(vabridge.Fraction{Num: setPar.Den, Den: setPar.Num})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	w := int(vabridge.ScaleRound(uint64(h), uint64(f.Num), uint64(f.Den)))
	out.Width.fixateNearest(w)
	if out.PAR.Present || setPar.Num != setPar.Den {
		out.PAR.set(setPar)
	}
	return fixed(out, src), nil
}

// fixateFromWidth mirrors fixateFromHeight for a pinned output width.
func fixateFromWidth(out *SizeConstraint, src Geometry, dar vabridge.Fraction,
	fromH, w int) (Geometry, error) {
	logger.Debugf(geometryTag, "width is fixed (%d)", w)

	if out.PAR.Fixed {
		toPar := out.PAR.Value
		f, ok := dar.Mul(vabridge.Fraction{Num: toPar.Den, Den: toPar.Num})
		if !ok {
			return Geometry{}, errors.WithStack(utils.OverflowError{})
		}
		h := int(vabridge.ScaleRound(uint64(w), uint64(f.Den), uint64(f.Num)))
		out.Height.fixateNearest(h)
		return fixed(out, src), nil
	}

	tmp := *out
	setH := tmp.Height.fixateNearest(fromH)
	toPar, ok := dar.Mul(vabridge.Fraction{Num: setH, Den: w})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	setPar := tmp.PAR.fixateNearest(toPar)

	if setPar == toPar {
		if out.PAR.Present || setPar.Num != setPar.Den {
			out.Height.set(setH)
			out.PAR.set(setPar)
		}
		return fixed(out, src), nil
	}

	f, ok := dar.Mul(vabridge.Fraction{Num: setPar.Den, Den: setPar.Num})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	h := int(vabridge.ScaleRound(uint64(w), uint64(f.Den), uint64(f.Num)))
	out.Height.fixateNearest(h)
	if out.PAR.Present || setPar.Num != setPar.Den {
		out.PAR.set(setPar)
	}
	return fixed(out, src), nil
}

// fixateFromPAR picks both dimensions for a pinned PAR, preferring the
// source height, then the source width, then whichever pair drifts the
// DAR least.
func fixateFromPAR(out *SizeConstraint, src Geometry, dar vabridge.Fraction,
	fromW, fromH int) (Geometry, error) {
	toPar := out.PAR.Value
	f, ok := dar.Mul(toPar)
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}

	// Keep the input height if possible (interlacing) and scale the
	// width with it.
	tmp := *out
	setH := tmp.Height.fixateNearest(fromH)
	w := int(vabridge.ScaleRound(uint64(setH), uint64(f.Num), uint64(f.Den)))
	setW := tmp.Width.fixateNearest(w)

	if setW == w {
		out.Width.set(setW)
		out.Height.set(setH)
		return fixed(out, src), nil
	}

	fH, fW := setH, setW

	// Second try: keep the input width and scale the height.
	tmp = *out
	setW = tmp.Width.fixateNearest(fromW)
	h := int(vabridge.ScaleRound(uint64(setW), uint64(f.Den), uint64(f.Num)))
	setH = tmp.Height.fixateNearest(h)

	if setH == h {
		out.Width.set(setW)
		out.Height.set(setH)
		return fixed(out, src), nil
	}

	// Neither try kept the DAR; keep the pair that drifts it least,
	// compared by cross multiplication.
	if setW*abs(setH-h) < abs(fW-w)*fH {
		fH = setH
		fW = setW
	}
	out.Width.set(fW)
	out.Height.set(fH)
	return fixed(out, src), nil
}

// fixateUnconstrained handles the fully free target: keep both source
// dimensions and re-derive the PAR; when the derived PAR is rejected,
// rescale width from the snapped height, then height from the snapped
// width, and finally accept the first pair with the accepted PAR.
func fixateUnconstrained(out *SizeConstraint, src Geometry, dar vabridge.Fraction,
	fromW, fromH int) (Geometry, error) {
	tmp := *out
	setH := tmp.Height.fixateNearest(fromH)
	setW := tmp.Width.fixateNearest(fromW)

	toPar, ok := dar.Mul(vabridge.Fraction{Num: setH, Den: setW})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}
	setPar := tmp.PAR.fixateNearest(toPar)

	setOutPar := func() {
		if out.PAR.Present || setPar.Num != setPar.Den {
			out.PAR.set(setPar)
		}
	}

	if setPar == toPar {
		out.Width.set(setW)
		out.Height.set(setH)
		setOutPar()
		return fixed(out, src), nil
	}

	f, ok := dar.Mul(vabridge.Fraction{Num: setPar.Den, Den: setPar.Num})
	if !ok {
		return Geometry{}, errors.WithStack(utils.OverflowError{})
	}

	w := int(vabridge.ScaleRound(uint64(setH), uint64(f.Num), uint64(f.Den)))
	tmpW := out.Width
	if tmpW.fixateNearest(w) == w {
		out.Width.set(w)
		out.Height.set(setH)
		setOutPar()
		return fixed(out, src), nil
	}

	h := int(vabridge.ScaleRound(uint64(setW), uint64(f.Den), uint64(f.Num)))
	tmpH := out.Height
	if tmpH.fixateNearest(h) == h {
		out.Width.set(setW)
		out.Height.set(h)
		setOutPar()
		return fixed(out, src), nil
	}

	// No DAR-preserving pair is acceptable; keep the nearest-match
	// dimensions from the first try.
	out.Width.set(setW)
	out.Height.set(setH)
	setOutPar()
	return fixed(out, src), nil
}

// fixed extracts the final geometry: anything still free snaps to the
// value nearest the source, and an absent square PAR reads as 1/1.
func fixed(out *SizeConstraint, src Geometry) Geometry {
	g := Geometry{PAR: vabridge.Fraction{Num: 1, Den: 1}}

	g.Width = out.Width.Nearest(src.Width)
	if out.Width.Fixed {
		g.Width = out.Width.Value
	}
	g.Height = out.Height.Nearest(src.Height)
	if out.Height.Fixed {
		g.Height = out.Height.Value
	}
	if out.PAR.Fixed {
		g.PAR = out.PAR.Value
	} else if out.PAR.Present {
		g.PAR = out.PAR.Nearest(vabridge.Fraction{Num: 1, Den: 1})
	}

	return g
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
