package wave

import (
	"bytes"
	"testing"

	"github.com/farcloser/waveforge/sample"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := buildWAV(2, 16, 44100, 256, func(ch, fr int) int32 {
		return int32((fr%100 - 50) * 200 * (ch + 1))
	})

	result, info, funcs, err := Decode[float64](bytes.NewReader(original))
	if err != nil || !result.IsSuccess() {
		t.Fatalf("Decode: result=%s err=%v", result, err)
	}

	encoded, err := Encode(info, funcs, nil, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	result2, info2, funcs2, err := Decode[float64](bytes.NewReader(encoded))
	if err != nil || !result2.IsSuccess() {
		t.Fatalf("re-Decode: result=%s err=%v", result2, err)
	}

	if info2.NumFrames != info.NumFrames {
		t.Fatalf("NumFrames changed: %d -> %d", info.NumFrames, info2.NumFrames)
	}

	for c := range funcs {
		for i := 0; i < info.NumFrames; i++ {
			a := funcs[c].Get(i / 2)
			b := funcs2[c].Get(i / 2)

			var av, bv float64
			if i%2 == 0 {
				av, bv = a.Re, b.Re
			} else {
				av, bv = a.Im, b.Im
			}

			diff := av - bv
			if diff < 0 {
				diff = -diff
			}

			// No dither source was supplied (nil); allow a couple of LSBs
			// of slack for the 32767-vs-32768 full-scale mismatch between
			// decode's and encode's quantisation steps.
			if diff > 3.0/32768 {
				t.Fatalf("channel %d frame %d: %v != %v (diff %v)", c, i, av, bv, diff)
			}
		}
	}
}

func TestEncodeNewFileCanonicalLayout(t *testing.T) {
	t.Parallel()

	format := Format{AudioFormat: formatPCM, Channels: 1, SampleRate: 44100, BitsPerSample: 16}
	names, editable := resolveChannelNames(1, 0, false)

	info := &FileInfo{Format: format, ChannelNames: names, ChannelEditable: editable, NumFrames: 4}

	fn, err := sample.Allocate[sample.Complex[float64]](4)
	if err != nil {
		t.Fatalf("sample.Allocate: %v", err)
	}

	encoded, err := Encode(info, []*sample.Function[sample.Complex[float64]]{fn}, nil, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Canonical "new file" layout: RIFF/WAVE header, then fmt, then data,
	// nothing else.
	result, decoded, _, err := Decode[float64](bytes.NewReader(encoded))
	if err != nil || !result.IsSuccess() {
		t.Fatalf("Decode of canonical layout: result=%s err=%v", result, err)
	}

	if decoded.Format.Channels != 1 || decoded.Format.SampleRate != 44100 {
		t.Fatalf("decoded format mismatch: %+v", decoded.Format)
	}

	if result.HasWarning(WarnChunk) {
		t.Fatalf("canonical layout should carry no unknown-chunk warning, got %s", result)
	}
}
