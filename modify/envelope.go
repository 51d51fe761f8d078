package modify

import (
	"math"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/sample"
)

// FrequencyRange maps a [fromHz, toHz) request onto bin indices of a
// complex-interleaved function of length n (representing 2n real samples)
// sampled at sampleRateHz. Edge frequencies (DC, Nyquist) are not
// editable: fromIdx=0 is silently raised to 1, toIdx=n is silently lowered
// to n-1. Returns ErrInvalidFrequencyRange if the clamped bounds still
// violate 1 <= fromIdx < toIdx <= n-1.
func FrequencyRange(fromHz, toHz float64, sampleRateHz, n int) (fromIdx, toIdx int, err error) {
	realLen := float64(2 * n)

	fromIdx = int(math.Floor(fromHz * realLen / float64(sampleRateHz)))
	toIdx = int(math.Floor(toHz * realLen / float64(sampleRateHz)))

	if fromIdx == 0 {
		fromIdx = 1
	}

	if toIdx == n {
		toIdx = n - 1
	}

	if fromIdx < 1 || fromIdx > n-1 || toIdx < 1 || toIdx > n-1 || fromIdx >= toIdx {
		return 0, 0, ErrInvalidFrequencyRange
	}

	return fromIdx, toIdx, nil
}

// envelopeWeight is the smoothing taper evaluated at bin k of the closed
// touched range [fromIdx, toIdx-1]: 1 at the range's centre regardless of
// smoothing, tapering to (1-smoothing) at its two actually-touched edges,
// k=fromIdx and k=toIdx-1. smoothing=0 gives a rectangular window (weight 1
// everywhere in range); smoothing=1 leaves both touched edges exactly
// untouched.
func envelopeWeight(k, fromIdx, toIdx int, smoothing float64) float64 {
	mid := float64(fromIdx+toIdx-1) / 2
	half := float64(toIdx-1-fromIdx) / 2

	if half == 0 {
		return 1
	}

	u := math.Abs(float64(k)-mid) / half
	raisedCosine := (1 - math.Cos(math.Pi*u)) / 2

	return 1 - smoothing*raisedCosine
}

// applyEnvelope mutates f in place over [fromIdx, toIdx), scaling each
// complex bin's magnitude while preserving its argument: Multiply scales
// by 1+(amount-1)*w, Add/Subtract (amount already negated by the caller)
// shifts magnitude by amount*w along the bin's own direction, falling back
// to a pure-real contribution when the bin is exactly zero.
func applyEnvelope[R sample.Real](
	f *sample.Function[sample.Complex[R]],
	fromIdx, toIdx int,
	changeType waveforge.ChangeType,
	amount, smoothing float64,
) {
	for k := fromIdx; k < toIdx; k++ {
		w := envelopeWeight(k, fromIdx, toIdx, smoothing)
		g := f.Get(k)

		switch changeType {
		case waveforge.Multiply:
			factor := 1 + (amount-1)*w
			f.Set(k, g.Scale(R(factor)))

		case waveforge.Add:
			mag := float64(g.Abs())
			shift := amount * w

			if mag == 0 {
				f.Set(k, sample.Complex[R]{Re: R(shift)})

				continue
			}

			dirRe := float64(g.Re) / mag
			dirIm := float64(g.Im) / mag

			f.Set(k, sample.Complex[R]{
				Re: g.Re + R(shift*dirRe),
				Im: g.Im + R(shift*dirIm),
			})
		}
	}
}
