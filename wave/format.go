package wave

import (
	"encoding/binary"
	"fmt"

	"github.com/farcloser/waveforge"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// pcmSubformatGUID is KSDATAFORMAT_SUBTYPE_PCM, the WAVEFORMATEXTENSIBLE
// subformat identifying plain PCM.
var pcmSubformatGUID = [16]byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// Format is the decoded contents of the fmt chunk: a WAVEFORMATEX, plus
// the WAVEFORMATEXTENSIBLE tail when present.
type Format struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int

	Extensible  bool
	ChannelMask uint32
}

// BytesPerSample is BitsPerSample/8; validated to be an integer multiple
// of 8 in [1,4] by parseFormat.
func (f Format) BytesPerSample() int { return f.BitsPerSample / 8 }

func parseFormat(payload []byte) (Format, error) {
	if len(payload) < 16 {
		return Format{}, fmt.Errorf("%w: fmt chunk shorter than 16 bytes", errBadFormatTag)
	}

	var f Format

	f.AudioFormat = binary.LittleEndian.Uint16(payload[0:2])
	f.Channels = int(binary.LittleEndian.Uint16(payload[2:4]))
	f.SampleRate = int(binary.LittleEndian.Uint32(payload[4:8]))
	// byteRate at [8:12], blockAlign at [12:14] are derivable, not kept.
	f.BitsPerSample = int(binary.LittleEndian.Uint16(payload[14:16]))

	switch f.AudioFormat {
	case formatPCM:
		// Standard PCM.

	case formatExtensible:
		if len(payload) < 40 {
			return Format{}, fmt.Errorf("%w: WAVEFORMATEXTENSIBLE shorter than 40 bytes", errBadFormatTag)
		}

		f.Extensible = true
		// validBitsPerSample at [18:20] is not distinguished from
		// BitsPerSample here; both must describe byte-aligned depths.
		f.ChannelMask = binary.LittleEndian.Uint32(payload[20:24])

		var subFormat [16]byte
		copy(subFormat[:], payload[24:40])

		if subFormat != pcmSubformatGUID {
			return Format{}, fmt.Errorf("%w: non-PCM subformat GUID", errBadFormatTag)
		}

	case formatIEEEFloat:
		return Format{}, fmt.Errorf("%w: IEEE float PCM not supported", errBadFormatTag)

	default:
		return Format{}, fmt.Errorf("%w: audio format tag 0x%04x", errBadFormatTag, f.AudioFormat)
	}

	if f.Channels < 1 {
		return Format{}, fmt.Errorf("%w: zero channels", errBadFormatTag)
	}

	if f.BitsPerSample%8 != 0 {
		return Format{}, fmt.Errorf("%w: %d bits not a multiple of 8", errBadBitDepth, f.BitsPerSample)
	}

	bytesPerSample := f.BitsPerSample / 8
	if !waveforge.ValidByteDepth(bytesPerSample) {
		return Format{}, fmt.Errorf("%w: %d bytes per sample", errBadBitDepth, bytesPerSample)
	}

	if !waveforge.ValidSampleRate(f.SampleRate) {
		return Format{}, fmt.Errorf("%w: %d Hz", errBadFrequency, f.SampleRate)
	}

	return f, nil
}

// encodeFormat serializes f back into a fmt chunk payload: 16 bytes for
// plain PCM, 40 for WAVEFORMATEXTENSIBLE (channels > 2 or bits > 16, per
// the teacher's own encoder heuristic).
func encodeFormat(f Format) []byte {
	channels := uint16(f.Channels)
	sampleRate := uint32(f.SampleRate)
	bits := uint16(f.BitsPerSample)
	byteRate := sampleRate * uint32(channels) * uint32(bits) / 8
	blockAlign := channels * bits / 8

	useExtensible := f.Channels > 2 || f.BitsPerSample > 16

	if !useExtensible {
		buf := make([]byte, 16)
		binary.LittleEndian.PutUint16(buf[0:2], formatPCM)
		binary.LittleEndian.PutUint16(buf[2:4], channels)
		binary.LittleEndian.PutUint32(buf[4:8], sampleRate)
		binary.LittleEndian.PutUint32(buf[8:12], byteRate)
		binary.LittleEndian.PutUint16(buf[12:14], blockAlign)
		binary.LittleEndian.PutUint16(buf[14:16], bits)

		return buf
	}

	buf := make([]byte, 40)
	binary.LittleEndian.PutUint16(buf[0:2], formatExtensible)
	binary.LittleEndian.PutUint16(buf[2:4], channels)
	binary.LittleEndian.PutUint32(buf[4:8], sampleRate)
	binary.LittleEndian.PutUint32(buf[8:12], byteRate)
	binary.LittleEndian.PutUint16(buf[12:14], blockAlign)
	binary.LittleEndian.PutUint16(buf[14:16], bits)
	binary.LittleEndian.PutUint16(buf[16:18], 22) // cbSize
	binary.LittleEndian.PutUint16(buf[18:20], bits)
	binary.LittleEndian.PutUint32(buf[20:24], channelMaskFor(f.Channels, f.ChannelMask))
	copy(buf[24:40], pcmSubformatGUID[:])

	return buf
}

func channelMaskFor(channels int, existing uint32) uint32 {
	if existing != 0 {
		return existing
	}

	switch channels {
	case 1:
		return 0x4 // FC
	case 2:
		return 0x3 // FL | FR
	case 4:
		return 0x33 // FL | FR | BL | BR
	case 6:
		return 0x3F // 5.1
	case 8:
		return 0x63F // 7.1
	default:
		return 0
	}
}
