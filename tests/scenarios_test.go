// Package tests_test holds end-to-end scenarios exercising package editor
// against real WAVE byte streams, independent of any one internal
// package's unit tests.
package tests_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/editor"
	"github.com/farcloser/waveforge/modify"
)

// TestSanityOpen is scenario 1: a 1-second mono 16-bit 44100Hz silent file
// opens successfully, pads to the Fourier-ready length, and is silent
// across its entire padded extent.
func TestSanityOpen(t *testing.T) {
	data := buildCanonicalWAV(1, 44100, 44100, func(int, int) float64 { return 0 })
	path := writeFixture(t, "silence.wav", data)

	e, err := editor.OpenFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer e.Close()

	if !e.OpenWarning().IsSuccess() {
		t.Fatalf("OpenWarning = %v, want success", e.OpenWarning())
	}

	ch, err := e.Channel(0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	if ch.PaddedLength() != waveforge.MinFourierLength {
		t.Fatalf("PaddedLength = %d, want %d", ch.PaddedLength(), waveforge.MinFourierLength)
	}

	max, err := ch.GetMax(0, ch.PaddedLength(), 1)
	if err != nil {
		t.Fatalf("GetMax: %v", err)
	}

	if max.Mag != 0 {
		t.Fatalf("GetMax.Mag = %v, want 0", max.Mag)
	}
}

// TestMultiplyHalfBandToZero is scenario 2: silencing [2000, 20000] Hz of a
// 1000 Hz tone leaves the tone intact and drives energy in the silenced
// band to (near) zero.
func TestMultiplyHalfBandToZero(t *testing.T) {
	const (
		rate   = 44100
		frames = 22050 // 0.5s
		toneHz = 1000.0
	)

	data := buildCanonicalWAV(1, rate, frames, func(_ int, fr int) float64 {
		return math.Sin(2 * math.Pi * toneHz * float64(fr) / float64(rate))
	})
	path := writeFixture(t, "tone.wav", data)

	e, err := editor.OpenFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer e.Close()

	ch, err := e.Channel(0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	originalPeak, err := ch.GetMax(0, ch.NumSamples(), 1)
	if err != nil {
		t.Fatalf("GetMax (time domain): %v", err)
	}

	if err := ch.SetDomain(waveforge.Frequency); err != nil {
		t.Fatalf("SetDomain(Frequency): %v", err)
	}

	fromIdx, toIdx, err := modify.FrequencyRange(2000, 20000, rate, ch.PaddedLength()/2)
	if err != nil {
		t.Fatalf("FrequencyRange: %v", err)
	}

	if err := ch.Apply(2000, 20000, waveforge.Multiply, 0, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	bandPeak, err := ch.GetMax(fromIdx, toIdx, 1)
	if err != nil {
		t.Fatalf("GetMax (silenced band): %v", err)
	}

	if bandPeak.Mag > 1e-4*originalPeak.Mag {
		t.Fatalf("silenced band peak = %v, want <= 1e-4 * %v", bandPeak.Mag, originalPeak.Mag)
	}

	if err := ch.SetDomain(waveforge.Time); err != nil {
		t.Fatalf("SetDomain(Time): %v", err)
	}

	reconstructedPeak, err := ch.GetMax(0, ch.NumSamples(), 1)
	if err != nil {
		t.Fatalf("GetMax (reconstructed): %v", err)
	}

	if reconstructedPeak.Mag < 0.9*originalPeak.Mag {
		t.Fatalf("reconstructed peak = %v, want >= 0.9 * %v", reconstructedPeak.Mag, originalPeak.Mag)
	}
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}

	return path
}
