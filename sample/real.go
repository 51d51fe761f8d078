// Package sample implements the segmented Sampled Function storage: a
// two-level (segment, offset) array addressed by a single logical index,
// generic over element precision, with a zero-copy complex/real aliasing
// view built on the guaranteed layout of a two-field struct.
package sample

import "math"

// Real is the element precision a Function can be instantiated over.
// Go's native complex64/complex128 are deliberately not used as the
// backing storage: the language does not guarantee their memory layout,
// whereas two adjacent fields of the same underlying type are guaranteed
// contiguous and padding-free, which is what makes the real/complex
// aliasing view in view.go safe.
type Real interface {
	~float32 | ~float64
}

// Complex is a two-field real/imaginary pair, laid out so that a slice of
// Complex[R] can be reinterpreted as a slice of R twice as long.
type Complex[R Real] struct {
	Re R
	Im R
}

func (c Complex[R]) Add(o Complex[R]) Complex[R] {
	return Complex[R]{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

func (c Complex[R]) Sub(o Complex[R]) Complex[R] {
	return Complex[R]{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

func (c Complex[R]) Mul(o Complex[R]) Complex[R] {
	return Complex[R]{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

func (c Complex[R]) Scale(s R) Complex[R] {
	return Complex[R]{Re: c.Re * s, Im: c.Im * s}
}

func (c Complex[R]) Conj() Complex[R] {
	return Complex[R]{Re: c.Re, Im: -c.Im}
}

// Abs is the magnitude |Re + i·Im|, computed in float64 regardless of R to
// avoid overflow/precision loss on the intermediate square, then converted
// back to R.
func (c Complex[R]) Abs() R {
	re, im := float64(c.Re), float64(c.Im)

	return R(math.Hypot(re, im))
}

// Arg is the phase angle, atan2(Im, Re), in radians.
func (c Complex[R]) Arg() float64 {
	return math.Atan2(float64(c.Im), float64(c.Re))
}

// FromPolar builds a Complex from magnitude and phase.
func FromPolar[R Real](mag R, phase float64) Complex[R] {
	s, c := math.Sincos(phase)

	return Complex[R]{Re: mag * R(c), Im: mag * R(s)}
}
