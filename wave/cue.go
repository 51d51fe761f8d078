package wave

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// CuePoint is one entry of a cue chunk: a 24-byte record of ID, playback
// position, owning fourCC, segment start offset, block start, and the
// sample offset within that segment.
type CuePoint struct {
	ID           uint32
	Position     uint32
	FccChunk     [4]byte
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
}

const cuePointSize = 24

// parseCuePoints decodes a cue chunk payload: a uint32 count followed by
// that many 24-byte records.
func parseCuePoints(payload []byte) ([]CuePoint, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: cue chunk shorter than 4 bytes", errBadCuePoint)
	}

	count := binary.LittleEndian.Uint32(payload[0:4])
	want := 4 + int(count)*cuePointSize

	if len(payload) < want {
		return nil, fmt.Errorf("%w: cue chunk declares %d points but is too short", errBadCuePoint, count)
	}

	points := make([]CuePoint, count)

	for i := range points {
		base := 4 + i*cuePointSize
		rec := payload[base : base+cuePointSize]

		points[i] = CuePoint{
			ID:           binary.LittleEndian.Uint32(rec[0:4]),
			Position:     binary.LittleEndian.Uint32(rec[4:8]),
			ChunkStart:   binary.LittleEndian.Uint32(rec[12:16]),
			BlockStart:   binary.LittleEndian.Uint32(rec[16:20]),
			SampleOffset: binary.LittleEndian.Uint32(rec[20:24]),
		}
		copy(points[i].FccChunk[:], rec[8:12])
	}

	return points, nil
}

// encodeCuePoints serializes points back into a cue chunk payload,
// preserving field order and width exactly.
func encodeCuePoints(points []CuePoint) []byte {
	buf := make([]byte, 4+len(points)*cuePointSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(points)))

	for i, p := range points {
		base := 4 + i*cuePointSize
		rec := buf[base : base+cuePointSize]

		binary.LittleEndian.PutUint32(rec[0:4], p.ID)
		binary.LittleEndian.PutUint32(rec[4:8], p.Position)
		copy(rec[8:12], p.FccChunk[:])
		binary.LittleEndian.PutUint32(rec[12:16], p.ChunkStart)
		binary.LittleEndian.PutUint32(rec[16:20], p.BlockStart)
		binary.LittleEndian.PutUint32(rec[20:24], p.SampleOffset)
	}

	return buf
}

// validateCuePoints checks rule 6: each point's ChunkStart must equal the
// start offset of an existing waveform segment, and SampleOffset must
// address a sample inside that segment. segmentStarts gives each
// segment's starting byte offset within the waveform payload, in order.
// Cue points are sorted by ChunkStart (stable) on return.
func validateCuePoints(points []CuePoint, segmentStarts []uint32, segmentSizes []uint32) error {
	starts := make(map[uint32]int, len(segmentStarts))
	for i, s := range segmentStarts {
		starts[s] = i
	}

	for _, p := range points {
		segIdx, ok := starts[p.ChunkStart]
		if !ok {
			return fmt.Errorf("%w: chunkStart %d matches no segment", errBadCuePoint, p.ChunkStart)
		}

		if p.SampleOffset >= segmentSizes[segIdx] {
			return fmt.Errorf("%w: sampleOffset %d outside segment %d", errBadCuePoint, p.SampleOffset, segIdx)
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].ChunkStart < points[j].ChunkStart })

	return nil
}
