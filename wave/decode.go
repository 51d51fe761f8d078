package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/sample"
)

// FileInfo is the decoded, caller-facing view of a WAVE file: its format,
// resolved channel names/editability, cue points, and frame count. The
// preserved chunk layout needed to re-emit unknown chunks verbatim on
// Encode travels with it but is not exported.
type FileInfo struct {
	Format          Format
	ChannelNames    []string
	ChannelEditable []bool
	CuePoints       []CuePoint
	NumFrames       int

	chunks *chunkSet
}

// Decode reads a RIFF/WAVE stream and returns a Result status, the decoded
// FileInfo, and one complex-interleaved SampledFunction per channel (in
// declaration order, including non-editable trailing channels so callers
// can still round-trip them on Encode). R fixes the precision for every
// channel of this file; the editor facade picks float32 or float64 from
// the file's bit depth before calling Decode.
//
// Validity rules 1-4 and 6 of the codec are enforced in that order, and
// the first violated rule determines the returned Result. Rule 5 (wavl
// segment ids and bounds), like duplicate-chunk detection, is checked
// earlier, during the chunk walk, so it is reported ahead of rules 1-4.
func Decode[R sample.Real](r io.Reader) (Result, *FileInfo, []*sample.Function[sample.Complex[R]], error) {
	var header [12]byte

	if _, err := io.ReadFull(r, header[:]); err != nil {
		return ErrNotWave, nil, nil, fmt.Errorf("%w: %v", errNotRIFF, err)
	}

	if string(header[0:4]) != idRIFF || string(header[8:12]) != idWAVE {
		return ErrNotWave, nil, nil, errNotRIFF
	}

	cs, err := discoverChunks(r)
	if err != nil {
		return resultForDiscoveryErr(err), nil, nil, err
	}

	// Rule 1: fmt and a waveform chunk must exist.
	if cs.fmtChunk == nil {
		return ErrBadWave, nil, nil, errMissingFmt
	}

	if cs.segments == nil {
		return ErrBadWave, nil, nil, errMissingWave
	}

	// Rule 2: a wavl layout requires a fact chunk.
	if cs.isWavl && cs.factChunk == nil {
		return ErrBadWave, nil, nil, errMissingFact
	}

	// Rule 3: plst requires cue.
	if cs.plstChunk != nil && cs.cueChunk == nil {
		return ErrBadWave, nil, nil, errMissingCue
	}

	// Rule 4: fmt must describe a supported profile.
	format, err := parseFormat(cs.fmtChunk.payload)
	if err != nil {
		return resultForFormatErr(err), nil, nil, err
	}

	// Rule 5 (segment id/ordering) was already enforced while walking the
	// wavl list in discoverChunks/parseWavlSegments.

	// Rule 6: cue points must address real segments/samples.
	var cuePoints []CuePoint

	if cs.cueChunk != nil {
		cuePoints, err = parseCuePoints(cs.cueChunk.payload)
		if err != nil {
			return ErrBadWave, nil, nil, err
		}

		starts, sizes := segmentByteRanges(cs.segments, format)

		if err := validateCuePoints(cuePoints, starts, sizes); err != nil {
			return ErrBadWave, nil, nil, err
		}
	}

	names, editable := resolveChannelNames(format.Channels, format.ChannelMask, format.Extensible)

	channelsReal, numFrames := decodeSegmentsToReal(cs.segments, format)
	if numFrames == 0 {
		return ErrBadSamples, nil, nil, errBadSamples
	}

	targetReal := nextPowerOfTwo(max(numFrames, waveforge.MinFourierLength))
	complexLen := targetReal / 2

	funcs := make([]*sample.Function[sample.Complex[R]], format.Channels)

	for c := 0; c < format.Channels; c++ {
		fn, err := sample.Allocate[sample.Complex[R]](complexLen)
		if err != nil {
			return ErrMisc, nil, nil, fmt.Errorf("allocating channel %d: %w", c, err)
		}

		writeChannelComplex(fn, channelsReal[c], numFrames)
		funcs[c] = fn
	}

	info := &FileInfo{
		Format:          format,
		ChannelNames:    names,
		ChannelEditable: editable,
		CuePoints:       cuePoints,
		NumFrames:       numFrames,
		chunks:          cs,
	}

	result := Success
	if hasUnknownChunk(cs) {
		result |= WarnChunk
	}

	if format.Channels > waveforge.MaxEditableChannels {
		result |= WarnChannel
	}

	return result, info, funcs, nil
}

// PeekFormat reads just enough of a RIFF/WAVE stream to resolve its fmt
// chunk, without decoding PCM data: used by callers (the editor facade) who
// need BitsPerSample to choose a precision before calling Decode[R] with
// the right R.
func PeekFormat(r io.Reader) (Result, Format, error) {
	var header [12]byte

	if _, err := io.ReadFull(r, header[:]); err != nil {
		return ErrNotWave, Format{}, fmt.Errorf("%w: %v", errNotRIFF, err)
	}

	if string(header[0:4]) != idRIFF || string(header[8:12]) != idWAVE {
		return ErrNotWave, Format{}, errNotRIFF
	}

	cs, err := discoverChunks(r)
	if err != nil {
		return resultForDiscoveryErr(err), Format{}, err
	}

	if cs.fmtChunk == nil {
		return ErrBadWave, Format{}, errMissingFmt
	}

	format, err := parseFormat(cs.fmtChunk.payload)
	if err != nil {
		return resultForFormatErr(err), Format{}, err
	}

	return Success, format, nil
}

func resultForDiscoveryErr(err error) Result {
	switch {
	case errors.Is(err, errBadSize):
		return ErrBadSize
	case errors.Is(err, errDuplicateChunk), errors.Is(err, errBadSegment):
		return ErrBadWave
	default:
		return ErrMisc
	}
}

func resultForFormatErr(err error) Result {
	switch {
	case errors.Is(err, errBadBitDepth):
		return ErrBadBitdepth
	case errors.Is(err, errBadFrequency):
		return ErrBadFrequency
	case errors.Is(err, errBadFormatTag):
		return ErrBadFormat
	default:
		return ErrMisc
	}
}

func hasUnknownChunk(cs *chunkSet) bool {
	for _, c := range cs.order {
		if c.role == "" && c.id != idFact && c.id != idPlst {
			return true
		}
	}

	return false
}

// segmentByteRanges reports each waveform segment's start offset and byte
// length, for matching against CuePoint.ChunkStart/SampleOffset.
func segmentByteRanges(segments []waveformSegment, format Format) (starts, sizes []uint32) {
	frameSize := uint32(format.Channels * format.BytesPerSample())

	starts = make([]uint32, len(segments))
	sizes = make([]uint32, len(segments))

	for i, seg := range segments {
		starts[i] = seg.startOffset

		if seg.isSilence {
			sizes[i] = seg.silentFrames * frameSize
		} else {
			sizes[i] = uint32(len(seg.data))
		}
	}

	return starts, sizes
}

// decodeSegmentsToReal walks the waveform segments in order, de-interleaving
// PCM bytes into one real-valued, time-domain slice per channel. Silent
// segments contribute zero frames to every channel.
func decodeSegmentsToReal(segments []waveformSegment, format Format) (channels [][]float64, numFrames int) {
	channels = make([][]float64, format.Channels)
	for c := range channels {
		channels[c] = make([]float64, 0, format.Channels)
	}

	bytesPerSample := format.BytesPerSample()
	frameSize := format.Channels * bytesPerSample

	for _, seg := range segments {
		if seg.isSilence {
			for c := range channels {
				for i := uint32(0); i < seg.silentFrames; i++ {
					channels[c] = append(channels[c], 0)
				}
			}

			continue
		}

		if frameSize == 0 {
			continue
		}

		nFrames := len(seg.data) / frameSize

		for fr := 0; fr < nFrames; fr++ {
			base := fr * frameSize

			for c := 0; c < format.Channels; c++ {
				off := base + c*bytesPerSample
				channels[c] = append(channels[c], decodeSample(seg.data[off:off+bytesPerSample]))
			}
		}
	}

	if format.Channels > 0 {
		numFrames = len(channels[0])
	}

	return channels, numFrames
}

// decodeSample converts bytesPerSample little-endian PCM bytes (1-4) into a
// float64 in [-1, 1]: 8-bit is unsigned with a 128 bias, the rest are
// signed integers divided by 2^(bits-1).
func decodeSample(b []byte) float64 {
	switch len(b) {
	case 1:
		return (float64(b[0]) - 128) / 128

	case 2:
		v := int16(binary.LittleEndian.Uint16(b))

		return float64(v) / 32768

	case 3:
		raw := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		if raw&0x800000 != 0 {
			raw |= 0xFF000000
		}

		return float64(int32(raw)) / 8388608

	case 4:
		v := int32(binary.LittleEndian.Uint32(b))

		return float64(v) / 2147483648

	default:
		return 0
	}
}

// writeChannelComplex writes n real, time-domain samples into fn's
// complex-interleaved storage: sample i lands in the real part of complex
// index i/2 when i is even, the imaginary part when i is odd. Slots beyond
// n are left at their zero-allocated value.
func writeChannelComplex[R sample.Real](fn *sample.Function[sample.Complex[R]], real []float64, n int) {
	for i := 0; i < n; i++ {
		ci := i / 2

		c := fn.Get(ci)
		if i%2 == 0 {
			c.Re = R(real[i])
		} else {
			c.Im = R(real[i])
		}

		fn.Set(ci, c)
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
