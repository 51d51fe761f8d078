// Package wave implements the RIFF/WAVE chunk parser and serializer: the
// canonical fmt /data layout and the less common wavl (waveform list)
// layout, WAVEFORMATEXTENSIBLE with channel masks, cue points, and the
// quantise-and-dither PCM encoder.
package wave

import "fmt"

// Result is a 32-bit bitfield: the low 16 bits hold at most one error
// code, the high 16 bits hold warning flags that may combine freely.
type Result uint32

// Success is the zero Result: no error, no warnings.
const Success Result = 0

// Error codes, explicit values (low 16 bits; at most one set at a time).
const (
	ErrCantOpen     Result = 1 << 0
	ErrNotWave      Result = 1 << 1
	ErrBadWave      Result = 1 << 2
	ErrBadFormat    Result = 1 << 3
	ErrBadBitdepth  Result = 1 << 4
	ErrBadFrequency Result = 1 << 5
	ErrBadSize      Result = 1 << 6
	ErrBadSamples   Result = 1 << 7
	ErrMisc         Result = 1 << 8

	errMask Result = 0x0000FFFF
)

// Warning flags, packed into the high 16 bits.
const (
	WarnChunk    Result = 1 << 16
	WarnChannel  Result = 1 << 17
	warningMask  Result = 0xFFFF0000
)

// IsSuccess reports whether no error bit is set (warnings may still be
// present).
func (r Result) IsSuccess() bool { return r&errMask == 0 }

// Error returns the single set error code, or Success if none is set.
func (r Result) Error() Result { return r & errMask }

// Warnings returns the set warning flags.
func (r Result) Warnings() Result { return r & warningMask }

// HasWarning reports whether flag is set in r.
func (r Result) HasWarning(flag Result) bool { return r&flag != 0 }

func (r Result) String() string {
	if r.IsSuccess() {
		if r.Warnings() == 0 {
			return "success"
		}

		return fmt.Sprintf("success (warnings=0x%04x)", uint32(r.Warnings()))
	}

	names := map[Result]string{
		ErrCantOpen:     "CantOpen",
		ErrNotWave:      "NotWave",
		ErrBadWave:      "BadWave",
		ErrBadFormat:    "BadFormat",
		ErrBadBitdepth:  "BadBitdepth",
		ErrBadFrequency: "BadFrequency",
		ErrBadSize:      "BadSize",
		ErrBadSamples:   "BadSamples",
		ErrMisc:         "Misc",
	}

	if name, ok := names[r.Error()]; ok {
		return name
	}

	return fmt.Sprintf("Result(0x%08x)", uint32(r))
}
