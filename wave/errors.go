package wave

import "errors"

// Sentinel errors returned by internal parsing helpers; Decode/Encode
// translate these into a Result code for the caller, per the spec's
// "file I/O mapped to Result on read" error-handling taxonomy.
var (
	errNotRIFF        = errors.New("wave: missing RIFF/WAVE magic")
	errDuplicateChunk = errors.New("wave: duplicate chunk")
	errMissingFmt     = errors.New("wave: missing fmt chunk")
	errMissingWave    = errors.New("wave: missing data/wavl chunk")
	errMissingFact    = errors.New("wave: wavl layout requires a fact chunk")
	errMissingCue     = errors.New("wave: plst chunk requires a cue chunk")
	errBadFormatTag   = errors.New("wave: unsupported format tag or subformat")
	errBadBitDepth    = errors.New("wave: bit depth not in {8,16,24,32}")
	errBadFrequency   = errors.New("wave: sample rate outside [8000, 96000]")
	errBadSize        = errors.New("wave: declared chunk size exceeds file data")
	errBadSamples     = errors.New("wave: zero audible samples")
	errBadSegment     = errors.New("wave: wavl segment not data/slnt or out of order")
	errBadCuePoint    = errors.New("wave: cue point does not address a valid segment/sample")
)
