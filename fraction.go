package vabridge

import (
	"fmt"
	"math"
)

// Fraction is an exact rational value, used for pixel and display
// aspect ratios. The zero value is not a valid fraction.
type Fraction struct {
	Num int
	Den int
}

// maxFractionTerm bounds numerators and denominators so results stay
// representable in the 32-bit fields hardware and caps carry.
const maxFractionTerm = math.MaxInt32

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Reduce returns the fraction in lowest terms.
func (f Fraction) Reduce() Fraction {
	g := gcd(f.Num, f.Den)
	if g == 0 {
		return f
	}
	return Fraction{f.Num / g, f.Den / g}
}

// Mul multiplies two fractions with cross reduction. It reports false
// when the reduced result would not fit the 32-bit bound; the numeric
// value is unusable in that case and must not be substituted.
func (f Fraction) Mul(g Fraction) (Fraction, bool) {
	f = f.Reduce()
	g = g.Reduce()

	if d := gcd(f.Num, g.Den); d != 0 {
		f.Num /= d
		g.Den /= d
	}
	if d := gcd(g.Num, f.Den); d != 0 {
		g.Num /= d
		f.Den /= d
	}

	num := int64(f.Num) * int64(g.Num)
	den := int64(f.Den) * int64(g.Den)
	if num > maxFractionTerm || den > maxFractionTerm ||
		num < -maxFractionTerm || den < -maxFractionTerm {
		return Fraction{}, false
	}
	return Fraction{int(num), int(den)}, true
}

// Cmp compares two fractions by cross multiplication, avoiding
// floating point. It returns -1, 0 or 1.
func (f Fraction) Cmp(g Fraction) int {
	l := int64(f.Num) * int64(g.Den)
	r := int64(g.Num) * int64(f.Den)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// String returns the fraction as "num/den".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// ScaleRound scales val by num/den with round-to-nearest, carried out
// in 64 bits.
func ScaleRound(val, num, den uint64) uint64 {
	if den == 0 {
		return 0
	}
	return (val*num + den/2) / den
}

// DisplayRatio derives the display aspect ratio fraction that a video of
// width x height with pixel aspect ratio par shows on a display whose
// own pixel ratio is displayPAR. It reports false on overflow.
func DisplayRatio(width, height int, par, displayPAR Fraction) (Fraction, bool) {
	n, ok := (Fraction{width, height}).Mul(par)
	if !ok {
		return Fraction{}, false
	}
	return n.Mul(Fraction{displayPAR.Den, displayPAR.Num})
}
