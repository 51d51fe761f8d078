package modify

import "errors"

var (
	// ErrInvalidFrequencyRange is returned when fromIdx/toIdx fail the
	// frequency→sample-index mapping's bounds after edge clamping.
	ErrInvalidFrequencyRange = errors.New("modify: invalid frequency range")

	// ErrOutOfMemory mirrors sample.ErrOutOfMemory for the modification
	// stack's own allocations (the snapshot node, its oldSamples clone).
	ErrOutOfMemory = errors.New("modify: allocation failed")
)
