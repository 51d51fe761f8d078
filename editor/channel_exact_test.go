package editor

import (
	"math"
	"testing"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/sample"
)

// snapshot copies every complex bin of fn into a plain slice for
// element-wise comparison; white-box, since Channel's public surface only
// exposes GetMin/GetMax extrema, not raw indexing.
func snapshot[R sample.Real](fn *sample.Function[sample.Complex[R]]) []sample.Complex[R] {
	out := make([]sample.Complex[R], fn.Len())
	for i := range out {
		out[i] = fn.Get(i)
	}

	return out
}

func assertComplexEqual[R sample.Real](t *testing.T, got, want []sample.Complex[R]) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Abs(float64(got[i].Re)-float64(want[i].Re)) > 1e-9 ||
			math.Abs(float64(got[i].Im)-float64(want[i].Im)) > 1e-9 {
			t.Fatalf("bin %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestUndoExactlyRestoresPriorState reproduces scenario 3 of spec.md's
// end-to-end list: Apply then Undo must reproduce the frequency-domain
// function bin-for-bin, not merely approximately.
func TestUndoExactlyRestoresPriorState(t *testing.T) {
	e, err := CreateNewFile(1, 44100, 1, 16, nil)
	if err != nil {
		t.Fatalf("CreateNewFile: %v", err)
	}
	defer e.Close()

	ch, err := e.Channel(0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	impl := ch.(*channel[float32])

	if err := ch.SetDomain(waveforge.Frequency); err != nil {
		t.Fatalf("SetDomain: %v", err)
	}

	before := snapshot(impl.fn)

	if err := ch.Apply(1000, 5000, waveforge.Multiply, 0.25, 0.5); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !ch.Undo() {
		t.Fatal("Undo should succeed")
	}

	assertComplexEqual(t, snapshot(impl.fn), before)
}

// TestRedoAfterUndoDiscardsStaleChain reproduces scenario 4: Apply, Undo,
// Apply (different params) must discard the old redo chain entirely.
func TestRedoAfterUndoDiscardsStaleChain(t *testing.T) {
	e, err := CreateNewFile(1, 44100, 1, 16, nil)
	if err != nil {
		t.Fatalf("CreateNewFile: %v", err)
	}
	defer e.Close()

	ch, err := e.Channel(0)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	impl := ch.(*channel[float32])

	if err := ch.SetDomain(waveforge.Frequency); err != nil {
		t.Fatalf("SetDomain: %v", err)
	}

	original := snapshot(impl.fn)

	if err := ch.Apply(1000, 5000, waveforge.Multiply, 0.25, 0.5); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	if !ch.Undo() {
		t.Fatal("Undo should succeed")
	}

	if err := ch.Apply(8000, 12000, waveforge.Add, 0.1, 0.1); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	if ch.CanRedo() {
		t.Fatal("redo chain from the discarded first Apply should not survive a fresh Apply")
	}

	if !ch.Undo() {
		t.Fatal("Undo after second Apply should succeed")
	}

	assertComplexEqual(t, snapshot(impl.fn), original)

	if ch.Undo() {
		t.Fatal("a second Undo past the start of the chain should return false")
	}
}
