package sample

import "unsafe"

// RealView is a zero-copy reinterpretation of a Function[Complex[R]] as a
// flat real sequence of twice the length: logical index 2k is Re(f[k]),
// 2k+1 is Im(f[k]). Safe because Complex[R]{Re, Im} is guaranteed
// contiguous and padding-free for two fields of the same underlying type,
// so a []Complex[R] segment can be reinterpreted in place as a []R of
// double length without reallocating or copying. The view must not be
// freed independently of the complex function it aliases.
type RealView[R Real] struct {
	complex *Function[Complex[R]]
}

// ReadComplexAsReal returns the real-interleaved view of f. Converting a
// function between real and complex aliases never reallocates.
func ReadComplexAsReal[R Real](f *Function[Complex[R]]) *RealView[R] {
	return &RealView[R]{complex: f}
}

// Len is the real-element length: twice the complex function's length.
func (v *RealView[R]) Len() int { return v.complex.totalLen * 2 }

func (v *RealView[R]) realSegmentLen() int { return v.complex.segmentLen * 2 }

func (v *RealView[R]) decompose(i int) (seg, off int) {
	sl := v.realSegmentLen()

	return i / sl, i % sl
}

func realSlice[R Real](seg []Complex[R]) []R {
	if len(seg) == 0 {
		return nil
	}

	return unsafe.Slice((*R)(unsafe.Pointer(&seg[0])), len(seg)*2)
}

// Get returns the real-interleaved element at index i.
func (v *RealView[R]) Get(i int) R {
	seg, off := v.decompose(i)

	return realSlice(v.complex.segments[seg])[off]
}

// Set stores x at real-interleaved index i.
func (v *RealView[R]) Set(i int, x R) {
	seg, off := v.decompose(i)
	realSlice(v.complex.segments[seg])[off] = x
}

// SegmentCount is the number of backing segments, shared with the aliased
// complex function.
func (v *RealView[R]) SegmentCount() int { return v.complex.SegmentCount() }

// Segment returns the real-reinterpreted backing slice for segment n, for
// in-place bulk operations over a whole segment.
func (v *RealView[R]) Segment(n int) []R {
	return realSlice(v.complex.segments[n])
}

// Complex returns the underlying complex function this view aliases.
func (v *RealView[R]) Complex() *Function[Complex[R]] { return v.complex }
