package editor

import (
	"math"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/fft"
	"github.com/farcloser/waveforge/modify"
	"github.com/farcloser/waveforge/sample"
)

// Channel is the non-generic view of one editable (or passthrough)
// channel, hiding the element precision fixed at file-open time.
type Channel interface {
	Name() string
	Editable() bool
	Domain() waveforge.Domain
	NumSamples() int
	PaddedLength() int
	SetDomain(d waveforge.Domain) error
	Apply(fromHz, toHz float64, changeType waveforge.ChangeType, amount, smoothing float64) error
	CanUndo() bool
	CanRedo() bool
	Undo() bool
	Redo() bool
	Dirty() bool
	GetMin(start, end, step int) (Extremum, error)
	GetMax(start, end, step int) (Extremum, error)
}

// Extremum is a plotter-facing (min or max) sample: its complex components
// and the magnitude they were compared by. For a time-domain channel, Im is
// always 0 and Mag is |Re|.
type Extremum struct {
	Re, Im, Mag float64
}

// channel is the generic Channel implementation: one SampledFunction, its
// modification stack, and the shared per-file FFT twiddle cache.
type channel[R sample.Real] struct {
	name         string
	editable     bool
	sampleRateHz int
	numSamples   int // original, unpadded real-sample (time-domain) count

	domain waveforge.Domain
	fn     *sample.Function[sample.Complex[R]]
	stack  *modify.Stack[R]
	cache  *fft.CacheSet[R]
}

func (c *channel[R]) Name() string             { return c.name }
func (c *channel[R]) Editable() bool            { return c.editable }
func (c *channel[R]) Domain() waveforge.Domain  { return c.domain }
func (c *channel[R]) NumSamples() int           { return c.numSamples }

// PaddedLength is the real-sample count the FFT actually operates over:
// numSamples rounded up to the next power of two, never below
// waveforge.MinFourierLength. In the time domain GetMin/GetMax accept
// indices up to this bound, not just up to NumSamples; in the frequency
// domain they index the PaddedLength()/2 complex bins.
func (c *channel[R]) PaddedLength() int { return sample.ReadComplexAsReal(c.fn).Len() }
func (c *channel[R]) CanUndo() bool             { return c.stack.CanUndo() }
func (c *channel[R]) CanRedo() bool             { return c.stack.CanRedo() }
func (c *channel[R]) Dirty() bool               { return c.stack.Dirty() }

// SetDomain transforms the channel's storage between time and frequency
// representation in place via the shared FFT cache. A request for the
// domain the channel is already in is a no-op.
func (c *channel[R]) SetDomain(d waveforge.Domain) error {
	if !c.editable {
		return ErrChannelNotEditable
	}

	if c.domain == d {
		return nil
	}

	var err error
	if d == waveforge.Frequency {
		err = fft.Forward(c.cache, c.fn)
	} else {
		err = fft.Inverse(c.cache, c.fn)
	}

	if err != nil {
		return err
	}

	c.domain = d

	return nil
}

// Apply runs one frequency-domain modification over [fromHz, toHz),
// transforming the channel into the frequency domain first if it is
// currently in the time domain.
func (c *channel[R]) Apply(fromHz, toHz float64, changeType waveforge.ChangeType, amount, smoothing float64) error {
	if !c.editable {
		return ErrChannelNotEditable
	}

	if err := c.SetDomain(waveforge.Frequency); err != nil {
		return err
	}

	fromIdx, toIdx, err := modify.FrequencyRange(fromHz, toHz, c.sampleRateHz, c.fn.Len())
	if err != nil {
		return err
	}

	return c.stack.Apply(c.fn, fromIdx, toIdx, changeType, amount, smoothing)
}

// Undo restores the frequency-domain snapshot of the most recent
// modification, transforming the channel into the frequency domain first
// if it is currently in the time domain (e.g. after a save).
func (c *channel[R]) Undo() bool {
	if !c.editable || !c.stack.CanUndo() {
		return false
	}

	if err := c.SetDomain(waveforge.Frequency); err != nil {
		return false
	}

	return c.stack.Undo(c.fn)
}

// Redo re-applies the next modification's envelope, transforming the
// channel into the frequency domain first if necessary.
func (c *channel[R]) Redo() bool {
	if !c.editable || !c.stack.CanRedo() {
		return false
	}

	if err := c.SetDomain(waveforge.Frequency); err != nil {
		return false
	}

	return c.stack.Redo(c.fn)
}

// GetMin returns the stride-sampled minimum over [start, end). In the time
// domain this scans the real-interleaved view of the samples; in the
// frequency domain it compares bins by magnitude, per the sampled
// function's GetMin/GetMax contract.
func (c *channel[R]) GetMin(start, end, step int) (Extremum, error) {
	return c.extremum(start, end, step, true)
}

func (c *channel[R]) GetMax(start, end, step int) (Extremum, error) {
	return c.extremum(start, end, step, false)
}

func (c *channel[R]) extremum(start, end, step int, wantMin bool) (Extremum, error) {
	if c.domain == waveforge.Time {
		view := sample.ReadComplexAsReal(c.fn)

		if step < 1 {
			return Extremum{}, sample.ErrStepTooSmall
		}

		if start < 0 || end > view.Len() || start > end {
			return Extremum{}, sample.ErrInvalidRange
		}

		best := math.Inf(1)
		if !wantMin {
			best = math.Inf(-1)
		}

		for i := start; i < end; i += step {
			v := float64(view.Get(i))
			if (wantMin && v < best) || (!wantMin && v > best) {
				best = v
			}
		}

		return Extremum{Re: best, Mag: math.Abs(best)}, nil
	}

	var (
		v   sample.Complex[R]
		err error
	)

	if wantMin {
		v, err = sample.GetMinComplex(c.fn, start, end, step)
	} else {
		v, err = sample.GetMaxComplex(c.fn, start, end, step)
	}

	if err != nil {
		return Extremum{}, err
	}

	return Extremum{Re: float64(v.Re), Im: float64(v.Im), Mag: float64(v.Abs())}, nil
}
