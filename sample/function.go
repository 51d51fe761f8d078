package sample

// Function is a logical sequence of totalLen samples of element type T,
// physically stored as segmentCount segments of segmentLen elements each.
// segmentLen is a power of two chosen at Allocate time and constant for
// the life of the function; index i decomposes into (i/segmentLen,
// i%segmentLen), implemented with a shift/mask since segmentLen is a
// power of two.
//
// T is left unconstrained (rather than bound to Real) so a Function can
// hold either a real precision directly or a Complex[R] pair — the
// real/complex aliasing view in view.go is what gives a Complex[R]
// function zero-copy access to its samples as a flat real sequence.
type Function[T any] struct {
	segments    [][]T
	segmentLen  int
	segmentMask int
	segmentBits uint
	totalLen    int
}

// maxSegmentLen caps a single segment at 2^24 elements so segment size
// stays bounded regardless of file length; see Allocate.
const maxSegmentLen = 1 << 24

// Allocate creates a Function able to hold totalLen samples. segmentLen is
// chosen as the largest power of two <= min(totalLen, 2^24); the function
// is divided into ceil(totalLen/segmentLen) segments of exactly segmentLen
// elements, with the tail of the last segment left zeroed.
func Allocate[T any](totalLen int) (*Function[T], error) {
	if totalLen < 0 {
		return nil, ErrInvalidRange
	}

	if totalLen == 0 {
		return &Function[T]{segmentLen: 1, segmentMask: 0, segmentBits: 0, totalLen: 0}, nil
	}

	if totalLen > maxAllocElements {
		return nil, ErrOutOfMemory
	}

	segLen := prevPowerOfTwo(min(totalLen, maxSegmentLen))
	if segLen < 1 {
		segLen = 1
	}

	segCount := (totalLen + segLen - 1) / segLen

	if int64(segCount)*int64(segLen) > maxAllocElements {
		return nil, ErrOutOfMemory
	}

	segments := make([][]T, segCount)
	for i := range segments {
		segments[i] = make([]T, segLen)
	}

	bits := uint(0)
	for 1<<bits < segLen {
		bits++
	}

	return &Function[T]{
		segments:    segments,
		segmentLen:  segLen,
		segmentMask: segLen - 1,
		segmentBits: bits,
		totalLen:    totalLen,
	}, nil
}

func prevPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p*2 <= n {
		p *= 2
	}

	return p
}

// Len reports the logical sample count.
func (f *Function[T]) Len() int { return f.totalLen }

// SegmentLen reports the fixed per-segment element count.
func (f *Function[T]) SegmentLen() int { return f.segmentLen }

// SegmentCount reports the number of backing segments.
func (f *Function[T]) SegmentCount() int { return len(f.segments) }

// Segment returns the backing slice for segment index n, exposing the full
// segmentLen elements including any unused tail slots in the last segment.
func (f *Function[T]) Segment(n int) []T { return f.segments[n] }

func (f *Function[T]) decompose(i int) (seg, off int) {
	return i >> f.segmentBits, i & f.segmentMask
}

// Get returns the sample at logical index i.
func (f *Function[T]) Get(i int) T {
	seg, off := f.decompose(i)

	return f.segments[seg][off]
}

// Set stores v at logical index i.
func (f *Function[T]) Set(i int, v T) {
	seg, off := f.decompose(i)
	f.segments[seg][off] = v
}

// PartialClone returns a new Function holding a copy of samples [lo, hi).
func (f *Function[T]) PartialClone(lo, hi int) (*Function[T], error) {
	if lo < 0 || hi > f.totalLen || lo > hi {
		return nil, ErrInvalidRange
	}

	out, err := Allocate[T](hi - lo)
	if err != nil {
		return nil, err
	}

	for i := lo; i < hi; i++ {
		out.Set(i-lo, f.Get(i))
	}

	return out, nil
}

// CopySamples bulk-copies count samples from src[srcStart:] into
// dst[dstStart:], crossing arbitrary segment boundaries on either side.
func CopySamples[T any](src, dst *Function[T], srcStart, dstStart, count int) error {
	if srcStart < 0 || dstStart < 0 || count < 0 {
		return ErrInvalidRange
	}

	if srcStart+count > src.totalLen || dstStart+count > dst.totalLen {
		return ErrInvalidRange
	}

	for i := 0; i < count; i++ {
		dst.Set(dstStart+i, src.Get(srcStart+i))
	}

	return nil
}
