package sample

import "errors"

var (
	// ErrOutOfMemory is returned when a requested allocation's size is
	// rejected by a pre-flight capacity check, standing in for the
	// "allocation failed" contract of a language with a checkable
	// malloc — Go's own allocator panics rather than returning an error,
	// so absurd sizes (a corrupt file's multi-terabyte sample count) are
	// caught before ever reaching make().
	ErrOutOfMemory = errors.New("sample: allocation exceeds capacity limit")

	// ErrInvalidRange is returned by range-taking operations (PartialClone,
	// CopySamples, GetMin/GetMax) given an out-of-bounds or inverted range.
	ErrInvalidRange = errors.New("sample: invalid range")

	// ErrStepTooSmall is returned when a stride argument is less than 1.
	ErrStepTooSmall = errors.New("sample: step must be >= 1")
)

// maxAllocElements bounds a single Allocate call; a real file's sample
// count multiplied by channel count will never approach this, so hitting
// it means the caller (or the file it decoded) is lying about its size.
const maxAllocElements = 1 << 34
