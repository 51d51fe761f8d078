package modify

import (
	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/sample"
)

// Modification is one node of the doubly-linked modification stack: the
// parameters of an edit plus a snapshot of the samples it overwrote,
// sufficient to undo without re-running the FFT.
type Modification[R sample.Real] struct {
	prev, next *Modification[R]

	fromIdx, toIdx int
	changeType     waveforge.ChangeType
	amount         float64
	smoothing      float64

	// oldSamples is the [fromIdx, toIdx) snapshot taken immediately
	// before this modification was applied.
	oldSamples *sample.Function[sample.Complex[R]]
}

// Stack is a doubly-linked, bidirectionally traversable modification
// stack with a sentinel head node. cursor marks the most recently applied
// modification (the sentinel itself, if nothing has been applied yet);
// everything reachable via cursor.next is the redo chain. saveState marks
// the cursor position at the last successful save.
type Stack[R sample.Real] struct {
	head      *Modification[R]
	cursor    *Modification[R]
	saveState *Modification[R]
}

// NewStack returns an empty stack: a single sentinel head, cursor and
// saveState both pointing at it.
func NewStack[R sample.Real]() *Stack[R] {
	head := &Modification[R]{}

	return &Stack[R]{head: head, cursor: head, saveState: head}
}

// Apply clones fn's [fromIdx, toIdx) range into a new modification node,
// discards the existing redo chain, applies the envelope in place, and
// advances the cursor. On allocation failure fn is left unchanged and the
// stack's existing chain is untouched.
func (s *Stack[R]) Apply(
	fn *sample.Function[sample.Complex[R]],
	fromIdx, toIdx int,
	changeType waveforge.ChangeType,
	amount, smoothing float64,
) error {
	snapshot, err := fn.PartialClone(fromIdx, toIdx)
	if err != nil {
		return ErrOutOfMemory
	}

	node := &Modification[R]{
		prev:       s.cursor,
		fromIdx:    fromIdx,
		toIdx:      toIdx,
		changeType: changeType,
		amount:     amount,
		smoothing:  smoothing,
		oldSamples: snapshot,
	}

	// Truncate the redo chain: dropping cursor.next makes everything
	// after it unreachable and collectible.
	s.cursor.next = node
	s.cursor = node

	applyEnvelope(fn, fromIdx, toIdx, changeType, amount, smoothing)

	return nil
}

// CanUndo reports whether the cursor is past the sentinel head.
func (s *Stack[R]) CanUndo() bool { return s.cursor != s.head }

// CanRedo reports whether the cursor has a next node.
func (s *Stack[R]) CanRedo() bool { return s.cursor.next != nil }

// Undo copies the cursor node's oldSamples back into fn and moves the
// cursor one step toward the sentinel head. Returns false if there is
// nothing to undo.
func (s *Stack[R]) Undo(fn *sample.Function[sample.Complex[R]]) bool {
	if !s.CanUndo() {
		return false
	}

	node := s.cursor

	for i := 0; i < node.oldSamples.Len(); i++ {
		fn.Set(node.fromIdx+i, node.oldSamples.Get(i))
	}

	s.cursor = node.prev

	return true
}

// Redo re-applies the envelope for the node after the cursor (not a copy
// of any snapshot — snapshots only ever hold "pre" state) and advances
// the cursor. Returns false if there is nothing to redo.
func (s *Stack[R]) Redo(fn *sample.Function[sample.Complex[R]]) bool {
	if !s.CanRedo() {
		return false
	}

	node := s.cursor.next

	applyEnvelope(fn, node.fromIdx, node.toIdx, node.changeType, node.amount, node.smoothing)

	s.cursor = node

	return true
}

// TouchedRanges returns the [fromIdx, toIdx) bin ranges of every
// modification currently in effect — the chain from the sentinel head up
// to the cursor, i.e. excluding any undone (redo-pending) nodes, whose
// ranges were already restored to their pre-modification values by Undo.
// A never-modified stack (or one undone back to the start) returns nil.
func (s *Stack[R]) TouchedRanges() [][2]int {
	if s.cursor == s.head {
		return nil
	}

	var ranges [][2]int

	for node := s.head.next; node != nil; node = node.next {
		ranges = append(ranges, [2]int{node.fromIdx, node.toIdx})

		if node == s.cursor {
			break
		}
	}

	return ranges
}

// MarkSaved records the current cursor position as the saved state.
func (s *Stack[R]) MarkSaved() { s.saveState = s.cursor }

// Dirty reports whether the cursor has moved since the last MarkSaved.
func (s *Stack[R]) Dirty() bool { return s.cursor != s.saveState }

// Close clears the stack's internal references so a completed
// modification chain becomes collectible immediately rather than being
// held alive until the stack itself is collected.
func (s *Stack[R]) Close() {
	s.head.next = nil
	s.cursor = nil
	s.saveState = nil
	s.head = nil
}
