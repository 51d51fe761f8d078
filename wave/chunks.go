package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	idRIFF = "RIFF"
	idWAVE = "WAVE"
	idFmt  = "fmt "
	idData = "data"
	idList = "LIST"
	idWavl = "wavl"
	idFact = "fact"
	idCue  = "cue "
	idPlst = "plst"
	idSlnt = "slnt"
)

// rawChunk is one top-level RIFF chunk as found in the file: its four-byte
// ID, declared size, and (for chunks the codec does not interpret) the
// verbatim payload bytes to re-emit on encode. Its position is its index
// in chunkSet.order.
type rawChunk struct {
	id      string
	size    uint32
	payload []byte // nil for data/wavl (read separately, may be large)

	// role marks chunks Encode regenerates from live state rather than
	// re-emitting verbatim: "fmt", "data" (covers wavl too), or "cue".
	// Empty means preserve payload verbatim.
	role string
}

// waveformSegment is one entry of a wavl waveform list: either a data
// segment (audible PCM bytes) or a slnt segment (a count of silent
// samples with no backing bytes).
type waveformSegment struct {
	isSilence    bool
	data         []byte // for "data" segments
	silentFrames uint32 // for "slnt" segments

	// startOffset is this segment's byte offset within the waveform
	// payload (0 for a lone "data" chunk, the sub-chunk header's offset
	// within the wavl body for a wavl segment). Matched against
	// CuePoint.ChunkStart by validateCuePoints.
	startOffset uint32
}

// chunkSet is the result of the top-level chunk walk: first-offset
// bookkeeping for the chunks the codec interprets, the ordered raw chunk
// list (for unknown-chunk preservation), and the waveform payload.
type chunkSet struct {
	order []rawChunk // every top-level chunk in file order, including known ones

	fmtChunk  *rawChunk
	factChunk *rawChunk
	cueChunk  *rawChunk
	plstChunk *rawChunk

	isWavl   bool
	segments []waveformSegment // populated for both data (single segment) and wavl
}

// discoverChunks walks the top-level RIFF chunk sequence once, recording
// the first occurrence of fmt , data/LIST(wavl), fact, cue , and plst.
// A chunk ID seen twice among the ones the codec interprets is an error.
func discoverChunks(r io.Reader) (*chunkSet, error) {
	cs := &chunkSet{}

	for {
		var header [8]byte

		n, err := io.ReadFull(r, header[:])
		if err != nil {
			if errors.Is(err, io.EOF) || (errors.Is(err, io.ErrUnexpectedEOF) && n == 0) {
				break
			}

			return nil, fmt.Errorf("reading chunk header: %w", err)
		}

		id := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])

		switch id {
		case idFmt:
			if cs.fmtChunk != nil {
				return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idFmt)
			}

			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.order = append(cs.order, rawChunk{id: id, size: size, payload: payload, role: "fmt"})
			cs.fmtChunk = &cs.order[len(cs.order)-1]

		case idData:
			if cs.segments != nil {
				return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idData)
			}

			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.segments = []waveformSegment{{data: payload, startOffset: 0}}
			cs.order = append(cs.order, rawChunk{id: id, size: size, role: "data"})

		case idList:
			listType, rest, err := peekListType(r, size)
			if err != nil {
				return nil, err
			}

			if listType == idWavl {
				if cs.segments != nil {
					return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idList)
				}

				segs, err := parseWavlSegments(rest)
				if err != nil {
					return nil, err
				}

				cs.isWavl = true
				cs.segments = segs
				cs.order = append(cs.order, rawChunk{id: idList, size: size, role: "data"})
			} else {
				// Unknown LIST payload: preserve the full body verbatim,
				// list-type tag included, for byte-identical re-emission.
				payload := make([]byte, 0, len(listType)+len(rest))
				payload = append(payload, []byte(listType)...)
				payload = append(payload, rest...)

				cs.order = append(cs.order, rawChunk{id: idList, size: size, payload: payload})
			}

		case idFact:
			if cs.factChunk != nil {
				return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idFact)
			}

			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.order = append(cs.order, rawChunk{id: id, size: size, payload: payload})
			cs.factChunk = &cs.order[len(cs.order)-1]

		case idCue:
			if cs.cueChunk != nil {
				return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idCue)
			}

			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.order = append(cs.order, rawChunk{id: id, size: size, payload: payload, role: "cue"})
			cs.cueChunk = &cs.order[len(cs.order)-1]

		case idPlst:
			if cs.plstChunk != nil {
				return nil, fmt.Errorf("%w: %s", errDuplicateChunk, idPlst)
			}

			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.order = append(cs.order, rawChunk{id: id, size: size, payload: payload})
			cs.plstChunk = &cs.order[len(cs.order)-1]

		default:
			payload, err := readChunkPayload(r, size)
			if err != nil {
				return nil, err
			}

			cs.order = append(cs.order, rawChunk{id: id, size: size, payload: payload})
		}
	}

	return cs, nil
}

func readChunkPayload(r io.Reader, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadSize, err)
	}

	if size%2 == 1 {
		var pad [1]byte
		if _, err := io.ReadFull(r, pad[:]); err != nil {
			return nil, fmt.Errorf("seeking past pad byte: %w", err)
		}
	}

	return buf, nil
}

// peekListType reads the whole LIST payload (size bytes plus pad),
// returning its 4-byte list-type tag and the remaining bytes.
func peekListType(r io.Reader, size uint32) (listType string, rest []byte, err error) {
	payload, err := readChunkPayload(r, size)
	if err != nil {
		return "", nil, err
	}

	if len(payload) < 4 {
		return "", nil, fmt.Errorf("%w: LIST payload too short", errBadSize)
	}

	return string(payload[0:4]), payload[4:], nil
}

// parseWavlSegments splits a wavl LIST body into its data/slnt sequence,
// validating that offsets are monotonically increasing and each segment
// ID is one of the two recognised kinds.
func parseWavlSegments(body []byte) ([]waveformSegment, error) {
	var segs []waveformSegment

	off := 0

	for off < len(body) {
		if off+8 > len(body) {
			return nil, fmt.Errorf("%w: truncated segment header", errBadSegment)
		}

		segStart := off
		id := string(body[off : off+4])
		size := binary.LittleEndian.Uint32(body[off+4 : off+8])
		off += 8

		switch id {
		case idData:
			if off+int(size) > len(body) {
				return nil, fmt.Errorf("%w: data segment exceeds wavl size", errBadSegment)
			}

			segs = append(segs, waveformSegment{data: body[off : off+int(size)], startOffset: uint32(segStart)})
			off += int(size)

		case idSlnt:
			if size != 4 || off+4 > len(body) {
				return nil, fmt.Errorf("%w: malformed slnt segment", errBadSegment)
			}

			frames := binary.LittleEndian.Uint32(body[off : off+4])
			segs = append(segs, waveformSegment{isSilence: true, silentFrames: frames, startOffset: uint32(segStart)})
			off += 4

		default:
			return nil, fmt.Errorf("%w: unexpected segment id %q", errBadSegment, id)
		}

		if size%2 == 1 {
			off++
		}
	}

	return segs, nil
}
