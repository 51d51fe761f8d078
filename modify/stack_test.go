package modify

import (
	"testing"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/sample"
)

func newTestFunction(t *testing.T, n int) *sample.Function[sample.Complex[float64]] {
	t.Helper()

	f, err := sample.Allocate[sample.Complex[float64]](n)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	for i := 0; i < n; i++ {
		f.Set(i, sample.Complex[float64]{Re: float64(i), Im: 0})
	}

	return f
}

func TestApplyThenUndoExact(t *testing.T) {
	f := newTestFunction(t, 100)
	stack := NewStack[float64]()

	before := snapshotAll(f)

	if err := stack.Apply(f, 10, 20, waveforge.Multiply, 2.0, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !stack.Undo(f) {
		t.Fatal("Undo returned false")
	}

	after := snapshotAll(f)

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("element %d: before=%v after=%v", i, before[i], after[i])
		}
	}

	if stack.CanUndo() {
		t.Fatal("CanUndo should be false after undoing the only modification")
	}
}

func TestUndoOnEmptyStackReturnsFalse(t *testing.T) {
	f := newTestFunction(t, 10)
	stack := NewStack[float64]()

	if stack.Undo(f) {
		t.Fatal("Undo on empty stack should return false")
	}

	if stack.Redo(f) {
		t.Fatal("Redo on empty stack should return false")
	}
}

func TestApplyUndoApplyDiscardsRedoChain(t *testing.T) {
	f := newTestFunction(t, 100)
	stack := NewStack[float64]()

	if err := stack.Apply(f, 10, 20, waveforge.Multiply, 2.0, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !stack.Undo(f) {
		t.Fatal("Undo returned false")
	}

	if err := stack.Apply(f, 30, 40, waveforge.Add, 1.0, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if stack.CanRedo() {
		t.Fatal("CanRedo should be false after a new Apply discards the old redo chain")
	}

	if !stack.Undo(f) {
		t.Fatal("first Undo should succeed")
	}

	if stack.Undo(f) {
		t.Fatal("second Undo should return false: only one modification remains")
	}
}

func TestDirtyTracksSaveState(t *testing.T) {
	f := newTestFunction(t, 100)
	stack := NewStack[float64]()

	if stack.Dirty() {
		t.Fatal("fresh stack should not be dirty")
	}

	if err := stack.Apply(f, 10, 20, waveforge.Multiply, 2.0, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !stack.Dirty() {
		t.Fatal("stack should be dirty after Apply")
	}

	stack.MarkSaved()

	if stack.Dirty() {
		t.Fatal("stack should not be dirty immediately after MarkSaved")
	}

	stack.Undo(f)

	if !stack.Dirty() {
		t.Fatal("stack should be dirty after undoing past the save point")
	}
}

func snapshotAll(f *sample.Function[sample.Complex[float64]]) []sample.Complex[float64] {
	out := make([]sample.Complex[float64], f.Len())
	for i := range out {
		out[i] = f.Get(i)
	}

	return out
}
