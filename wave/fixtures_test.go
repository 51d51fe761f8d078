package wave

import (
	"bytes"
	"encoding/binary"
)

// buildWAV assembles a minimal canonical fmt+data WAVE file: channels of
// bits-per-sample PCM at the given rate, with frames samples per channel
// generated by gen(channel, frame).
func buildWAV(channels, bits, rate, frames int, gen func(ch, frame int) int32) []byte {
	bytesPerSample := bits / 8
	frameSize := channels * bytesPerSample

	var pcm bytes.Buffer

	for fr := 0; fr < frames; fr++ {
		for ch := 0; ch < channels; ch++ {
			v := gen(ch, fr)

			switch bytesPerSample {
			case 1:
				pcm.WriteByte(byte(v + 128))
			case 2:
				var b [2]byte
				binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
				pcm.Write(b[:])
			case 3:
				var b [3]byte
				b[0] = byte(v)
				b[1] = byte(v >> 8)
				b[2] = byte(v >> 16)
				pcm.Write(b[:])
			case 4:
				var b [4]byte
				binary.LittleEndian.PutUint32(b[:], uint32(v))
				pcm.Write(b[:])
			}
		}
	}

	fmtPayload := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], formatPCM)
	binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(rate))
	binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(rate*channels*bytesPerSample))
	binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(frameSize))
	binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bits))

	var out bytes.Buffer

	out.WriteString(idRIFF)

	bodyLen := 4 + 8 + len(fmtPayload) + 8 + pcm.Len()
	if pcm.Len()%2 == 1 {
		bodyLen++
	}

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(bodyLen))
	out.Write(sizeBuf[:])
	out.WriteString(idWAVE)

	writeTestChunk(&out, idFmt, fmtPayload)
	writeTestChunk(&out, idData, pcm.Bytes())

	return out.Bytes()
}

// buildWAVExtensible assembles a WAVEFORMATEXTENSIBLE canonical fmt+data
// file with an explicit channel mask.
func buildWAVExtensible(channels, bits, rate int, mask uint32, frames int, gen func(ch, frame int) int32) []byte {
	bytesPerSample := bits / 8
	frameSize := channels * bytesPerSample

	var pcm bytes.Buffer

	for fr := 0; fr < frames; fr++ {
		for ch := 0; ch < channels; ch++ {
			v := gen(ch, fr)

			switch bytesPerSample {
			case 2:
				var b [2]byte
				binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
				pcm.Write(b[:])
			case 3:
				var b [3]byte
				b[0] = byte(v)
				b[1] = byte(v >> 8)
				b[2] = byte(v >> 16)
				pcm.Write(b[:])
			case 4:
				var b [4]byte
				binary.LittleEndian.PutUint32(b[:], uint32(v))
				pcm.Write(b[:])
			}
		}
	}

	fmtPayload := make([]byte, 40)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], formatExtensible)
	binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(rate))
	binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(rate*channels*bytesPerSample))
	binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(frameSize))
	binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bits))
	binary.LittleEndian.PutUint16(fmtPayload[16:18], 22)
	binary.LittleEndian.PutUint16(fmtPayload[18:20], uint16(bits))
	binary.LittleEndian.PutUint32(fmtPayload[20:24], mask)
	copy(fmtPayload[24:40], pcmSubformatGUID[:])

	var out bytes.Buffer

	out.WriteString(idRIFF)

	bodyLen := 4 + 8 + len(fmtPayload) + 8 + pcm.Len()
	if pcm.Len()%2 == 1 {
		bodyLen++
	}

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(bodyLen))
	out.Write(sizeBuf[:])
	out.WriteString(idWAVE)

	writeTestChunk(&out, idFmt, fmtPayload)
	writeTestChunk(&out, idData, pcm.Bytes())

	return out.Bytes()
}

func writeTestChunk(buf *bytes.Buffer, id string, payload []byte) {
	buf.WriteString(id)

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(payload)))
	buf.Write(sizeBuf[:])
	buf.Write(payload)

	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}
