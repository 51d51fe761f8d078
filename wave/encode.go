package wave

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/farcloser/waveforge/internal/atomicfile"
	"github.com/farcloser/waveforge/internal/dither"
	"github.com/farcloser/waveforge/sample"
)

// Encode serializes info and channels back into a well-formed RIFF/WAVE
// stream: fmt, data (or cue, when present) are regenerated from live
// state; every other chunk from the original file is re-emitted
// byte-identical, in its original relative position. A FileInfo with no
// preserved chunk layout (info.chunks == nil, i.e. a file never decoded
// from disk) gets the canonical "new file" layout: fmt + data only.
//
// touched gives, per channel, the complex-bin index ranges (the same
// [fromIdx, toIdx) a modification's envelope was applied over) that have
// actually been modified since decode (nil or empty for a channel that
// has never been touched); only the real samples packed into those bins
// receive dither, so a save-as of an unmodified file reproduces its PCM
// bytes exactly.
func Encode[R sample.Real](
	info *FileInfo,
	channels []*sample.Function[sample.Complex[R]],
	touched [][][2]int,
	ditherSrc *dither.Source,
) ([]byte, error) {
	pcm, err := encodePCM(info, channels, touched, ditherSrc)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer

	if info.chunks == nil {
		writeChunk(&body, idFmt, encodeFormat(info.Format))
		writeChunk(&body, idData, pcm)
	} else {
		for _, rc := range info.chunks.order {
			switch rc.role {
			case "fmt":
				writeChunk(&body, idFmt, encodeFormat(info.Format))
			case "data":
				// Re-emitted as a plain data chunk even when the source
				// file used the wavl layout: decode already flattened
				// the wavl's data/slnt segments into one continuous
				// sample sequence, so the segment boundaries are not
				// preserved across a round trip.
				writeChunk(&body, idData, pcm)
			case "cue":
				writeChunk(&body, idCue, encodeCuePoints(info.CuePoints))
			default:
				writeChunk(&body, rc.id, rc.payload)
			}
		}
	}

	var out bytes.Buffer

	out.WriteString(idRIFF)

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(4+body.Len())) // "WAVE" + chunks
	out.Write(sizeBuf[:])
	out.WriteString(idWAVE)
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// WriteFile encodes info/channels and atomically replaces path with the
// result: written to a temp file in the same directory, fsynced, then
// renamed over the destination.
func WriteFile[R sample.Real](
	path string,
	info *FileInfo,
	channels []*sample.Function[sample.Complex[R]],
	touched [][][2]int,
	ditherSrc *dither.Source,
) error {
	data, err := Encode(info, channels, touched, ditherSrc)
	if err != nil {
		return err
	}

	if err := atomicfile.Write(path, data, 0o644); err != nil {
		return fmt.Errorf("wave: writing %s: %w", path, err)
	}

	return nil
}

func writeChunk(buf *bytes.Buffer, id string, payload []byte) {
	buf.WriteString(id)

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(payload)))
	buf.Write(sizeBuf[:])
	buf.Write(payload)

	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

// encodePCM quantises every channel's complex-interleaved real samples
// (editable or not; Decode returns a SampledFunction for each) back to
// signed (or 8-bit unsigned-biased) little-endian PCM, interleaved per
// frame, truncated to info.NumFrames. A channel with no SampledFunction
// (missing or nil in channels) is written as silence.
//
// Dither is only added to samples whose complex bin falls in one of
// touched[c]'s ranges: a real sample whose bin was never touched by a
// modification is quantised with a dither value of exactly 0, so a
// channel nothing ever modified round-trips bit-exact.
func encodePCM[R sample.Real](
	info *FileInfo,
	channels []*sample.Function[sample.Complex[R]],
	touched [][][2]int,
	ditherSrc *dither.Source,
) ([]byte, error) {
	bytesPerSample := info.Format.BytesPerSample()
	frameSize := info.Format.Channels * bytesPerSample
	out := make([]byte, info.NumFrames*frameSize)

	for c := 0; c < info.Format.Channels; c++ {
		if c >= len(channels) || channels[c] == nil {
			continue // non-editable passthrough channel, left silent
		}

		fn := channels[c]

		var ranges [][2]int
		if c < len(touched) {
			ranges = touched[c]
		}

		for i := 0; i < info.NumFrames; i++ {
			ci := i / 2
			comp := fn.Get(ci)

			var real float64
			if i%2 == 0 {
				real = float64(comp.Re)
			} else {
				real = float64(comp.Im)
			}

			var d float64
			if ditherSrc != nil && binIndexTouched(ci, ranges) {
				d = ditherSrc.Sample()
			}

			sampleBytes := quantize(real, d, bytesPerSample)

			off := i*frameSize + c*bytesPerSample
			copy(out[off:off+bytesPerSample], sampleBytes)
		}
	}

	return out, nil
}

// binIndexTouched reports whether ci falls within any of ranges, each a
// [lo, hi) pair of complex-bin indices.
func binIndexTouched(ci int, ranges [][2]int) bool {
	for _, r := range ranges {
		if ci >= r[0] && ci < r[1] {
			return true
		}
	}

	return false
}

// quantize clamps x to [-1, 1], adds a dither value in LSB units, and
// rounds to the nearest integer PCM code for the given byte depth.
func quantize(x, ditherLSB float64, bytesPerSample int) []byte {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	buf := make([]byte, bytesPerSample)

	switch bytesPerSample {
	case 1:
		v := round(x*127 + ditherLSB)
		buf[0] = byte(clampInt(v, -128, 127) + 128)

	case 2:
		v := round(x*32767 + ditherLSB)
		binary.LittleEndian.PutUint16(buf, uint16(int16(clampInt(v, -32768, 32767))))

	case 3:
		v := clampInt(round(x*8388607+ditherLSB), -8388608, 8388607)
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)

	case 4:
		v := round(x*2147483647 + ditherLSB)
		binary.LittleEndian.PutUint32(buf, uint32(int32(clampInt(v, -2147483648, 2147483647))))
	}

	return buf
}

func round(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}

	return int64(x - 0.5)
}

func clampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
