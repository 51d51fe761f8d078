package sample

import (
	"math"

	"github.com/samber/lo"
)

// GetMin returns the stride-sampled minimum over [start, end) of a real
// function. step must be >= 1; end is exclusive. An empty range returns
// +Inf, the min identity.
func GetMin[R Real](f *Function[R], start, end, step int) (R, error) {
	return extremum(f, start, end, step, R(math.Inf(1)), func(cur, cand R) bool { return cand < cur })
}

// GetMax returns the stride-sampled maximum over [start, end) of a real
// function. step must be >= 1; end is exclusive. An empty range returns
// -Inf, the max identity.
func GetMax[R Real](f *Function[R], start, end, step int) (R, error) {
	return extremum(f, start, end, step, R(math.Inf(-1)), func(cur, cand R) bool { return cand > cur })
}

func extremum[R Real](
	f *Function[R], start, end, step int, identity R, better func(cur, cand R) bool,
) (R, error) {
	if step < 1 {
		return 0, ErrStepTooSmall
	}

	if start < 0 || end > f.totalLen || start > end {
		return 0, ErrInvalidRange
	}

	best := identity

	for i := start; i < end; i += step {
		v := f.Get(i)
		if better(best, v) {
			best = v
		}
	}

	return best, nil
}

// GetMinComplex returns the stride-sampled minimum-magnitude element over
// [start, end) of a complex function: comparison is by |Re + i·Im|, but
// the original complex value is returned. An empty range returns {+Inf, 0}.
func GetMinComplex[R Real](f *Function[Complex[R]], start, end, step int) (Complex[R], error) {
	identity := Complex[R]{Re: R(math.Inf(1))}

	return extremumComplex(f, start, end, step, identity, func(cur, cand R) bool { return cand < cur })
}

// GetMaxComplex is GetMinComplex's maximum-magnitude counterpart. An empty
// range returns {-Inf, 0}.
func GetMaxComplex[R Real](f *Function[Complex[R]], start, end, step int) (Complex[R], error) {
	identity := Complex[R]{Re: R(math.Inf(-1))}

	return extremumComplex(f, start, end, step, identity, func(cur, cand R) bool { return cand > cur })
}

func extremumComplex[R Real](
	f *Function[Complex[R]], start, end, step int, identity Complex[R], better func(cur, cand R) bool,
) (Complex[R], error) {
	if step < 1 {
		return Complex[R]{}, ErrStepTooSmall
	}

	if start < 0 || end > f.totalLen || start > end {
		return Complex[R]{}, ErrInvalidRange
	}

	best := identity
	// identity.Re is +Inf (min) or -Inf (max); its sign seeds the comparison,
	// which identity.Abs() would lose by mapping both to +Inf.
	bestMag := identity.Re

	for i := start; i < end; i += step {
		v := f.Get(i)
		mag := v.Abs()

		if better(bestMag, mag) {
			best = v
			bestMag = mag
		}
	}

	return best, nil
}

// ExtremaAtStride scans [start, end) at the given stride and returns the
// (min, max) pair, composed from a materialized index slice via
// samber/lo the way a display/plotter consumer wants. Values are read
// through the segment-aware Get accessor at each stride index; only the
// stride indices and the values at them are materialized, not a copy of
// the whole function.
func ExtremaAtStride[R Real](f *Function[R], start, end, step int) (minV, maxV R, err error) {
	if step < 1 {
		return 0, 0, ErrStepTooSmall
	}

	if start < 0 || end > f.totalLen || start > end {
		return 0, 0, ErrInvalidRange
	}

	indices := strideIndices(start, end, step)
	if len(indices) == 0 {
		return R(math.Inf(1)), R(math.Inf(-1)), nil
	}

	values := lo.Map(indices, func(idx int, _ int) R { return f.Get(idx) })

	minV = lo.MinBy(values, func(a, b R) bool { return a < b })
	maxV = lo.MaxBy(values, func(a, b R) bool { return a > b })

	return minV, maxV, nil
}

func strideIndices(start, end, step int) []int {
	steps := lo.RangeWithStep(float64(start), float64(end), float64(step))

	return lo.Map(steps, func(v float64, _ int) int { return int(v) })
}
