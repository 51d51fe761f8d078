package tests_test

import (
	"bytes"
	"encoding/binary"
	"math"
)

// buildCanonicalWAV assembles a minimal canonical fmt+data 16-bit PCM WAVE
// file: channels of samples at rate, frames samples per channel generated
// by gen(channel, frame), in [-1, 1].
func buildCanonicalWAV(channels, rate, frames int, gen func(ch, frame int) float64) []byte {
	const bitsPerSample = 16

	bytesPerSample := bitsPerSample / 8
	frameSize := channels * bytesPerSample

	var pcm bytes.Buffer

	for fr := range frames {
		for ch := range channels {
			v := gen(ch, fr)

			s := int16(math.Round(v * 32767))

			var b [2]byte
			binary.LittleEndian.PutUint16(b[:], uint16(s))
			pcm.Write(b[:])
		}
	}

	fmtPayload := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(rate))
	binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(rate*channels*bytesPerSample))
	binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(frameSize))
	binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bitsPerSample))

	var out bytes.Buffer

	out.WriteString("RIFF")

	bodyLen := 4 + 8 + len(fmtPayload) + 8 + pcm.Len()
	if pcm.Len()%2 == 1 {
		bodyLen++
	}

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(bodyLen))
	out.Write(sizeBuf[:])
	out.WriteString("WAVE")

	writeChunk(&out, "fmt ", fmtPayload)
	writeChunk(&out, "data", pcm.Bytes())

	return out.Bytes()
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
