// Package waveforge holds the shared domain types of the frequency-domain
// WAVE editing core: the element precision/domain tag, the edit operation
// kind, and the compile-time limits every other package is built against.
//
// Concrete functionality lives in sub-packages: sample (segmented storage),
// fft (real-interleaved transform), modify (edit engine), wave (RIFF/WAVE
// codec), editor (the public facade tying them together).
package waveforge

import "fmt"

// SampleType tags a channel function by element precision and domain.
// Precision is fixed for the function's lifetime; domain toggles as the
// channel is transformed to/from frequency domain.
type SampleType uint8

const (
	RealFloat32 SampleType = iota
	RealFloat64
	ComplexFloat32
	ComplexFloat64
)

func (t SampleType) String() string {
	switch t {
	case RealFloat32:
		return "real32"
	case RealFloat64:
		return "real64"
	case ComplexFloat32:
		return "complex32"
	case ComplexFloat64:
		return "complex64"
	default:
		return fmt.Sprintf("SampleType(%d)", uint8(t))
	}
}

// Domain is the time/frequency state of a channel function.
type Domain uint8

const (
	Time Domain = iota
	Frequency
)

func (d Domain) String() string {
	if d == Frequency {
		return "frequency"
	}

	return "time"
}

// ChangeType is the kind of edit a Modification applies. Subtract is not a
// distinct wire value: callers normalize it to Add with a negated amount
// before it reaches the modification engine.
type ChangeType uint8

const (
	Multiply ChangeType = iota
	Add
)

func (c ChangeType) String() string {
	if c == Multiply {
		return "multiply"
	}

	return "add"
}

// Compile-time limits.
const (
	MinSampleRateHz = 8_000
	MaxSampleRateHz = 96_000

	// MaxEditableChannels bounds how many channels get a SampledFunction;
	// trailing channels beyond this are read-only passthrough.
	MaxEditableChannels = 18

	// MinFourierLength is the smallest padded per-channel real sample
	// count the engine will operate on (2^16).
	MinFourierLength = 1 << 16

	MinNewFileSeconds = 1
	MaxNewFileSeconds = 3600

	MinByteDepth = 1
	MaxByteDepth = 4
)

// ValidByteDepth reports whether bytes-per-sample is one of {1,2,3,4}.
func ValidByteDepth(n int) bool {
	return n >= MinByteDepth && n <= MaxByteDepth
}

// ValidSampleRate reports whether rate lies in the supported range.
func ValidSampleRate(hz int) bool {
	return hz >= MinSampleRateHz && hz <= MaxSampleRateHz
}
