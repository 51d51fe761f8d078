package wave

import "testing"

func TestCuePointRoundTrip(t *testing.T) {
	t.Parallel()

	points := []CuePoint{
		{ID: 1, Position: 0, ChunkStart: 0, BlockStart: 0, SampleOffset: 10},
		{ID: 2, Position: 100, ChunkStart: 0, BlockStart: 0, SampleOffset: 200},
	}

	buf := encodeCuePoints(points)

	got, err := parseCuePoints(buf)
	if err != nil {
		t.Fatalf("parseCuePoints: %v", err)
	}

	if len(got) != len(points) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(points))
	}

	for i := range points {
		if got[i] != points[i] {
			t.Fatalf("point %d: got %+v, want %+v", i, got[i], points[i])
		}
	}
}

func TestValidateCuePointsRejectsUnknownSegment(t *testing.T) {
	t.Parallel()

	points := []CuePoint{{ChunkStart: 999, SampleOffset: 0}}

	err := validateCuePoints(points, []uint32{0}, []uint32{100})
	if err == nil {
		t.Fatal("expected error for unmatched ChunkStart")
	}
}

func TestValidateCuePointsRejectsOutOfRangeSample(t *testing.T) {
	t.Parallel()

	points := []CuePoint{{ChunkStart: 0, SampleOffset: 500}}

	err := validateCuePoints(points, []uint32{0}, []uint32{100})
	if err == nil {
		t.Fatal("expected error for sampleOffset beyond segment size")
	}
}

func TestValidateCuePointsSortsByChunkStart(t *testing.T) {
	t.Parallel()

	points := []CuePoint{
		{ChunkStart: 50, SampleOffset: 0},
		{ChunkStart: 0, SampleOffset: 0},
	}

	if err := validateCuePoints(points, []uint32{0, 50}, []uint32{100, 100}); err != nil {
		t.Fatalf("validateCuePoints: %v", err)
	}

	if points[0].ChunkStart != 0 || points[1].ChunkStart != 50 {
		t.Fatalf("points not sorted: %+v", points)
	}
}
