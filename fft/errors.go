package fft

import "errors"

var (
	// ErrNotPowerOfTwo is returned when the complex-FFT length N passed to
	// Forward/Inverse is not a power of two.
	ErrNotPowerOfTwo = errors.New("fft: length is not a power of two")

	// ErrTooShort is returned when N < 4 (real length < 8), the minimum
	// the real-interleaved packing needs to have a distinct DC, Nyquist,
	// and at least one genuine complex bin.
	ErrTooShort = errors.New("fft: length below minimum of 4")

	// ErrLengthMismatch is returned when the input function's length does
	// not equal N exactly.
	ErrLengthMismatch = errors.New("fft: input length does not match N")
)
