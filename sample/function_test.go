package sample

import "testing"

func TestAllocateSegmentLenPowerOfTwo(t *testing.T) {
	f, err := Allocate[float64](100)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if f.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", f.Len())
	}

	sl := f.SegmentLen()
	if sl&(sl-1) != 0 {
		t.Fatalf("segment len %d is not a power of two", sl)
	}

	if sl > 100 {
		t.Fatalf("segment len %d exceeds totalLen 100", sl)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	f, err := Allocate[float64](1 << 18) // one 2^18-element segment (below the 2^24 cap)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	for i := 0; i < f.Len(); i += 997 {
		f.Set(i, float64(i)*1.5)
	}

	for i := 0; i < f.Len(); i += 997 {
		got := f.Get(i)
		want := float64(i) * 1.5

		if got != want {
			t.Fatalf("Get(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestAllocateOutOfMemory(t *testing.T) {
	_, err := Allocate[float64](maxAllocElements + 1)
	if err != ErrOutOfMemory {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
}

func TestPartialCloneAndCopySamples(t *testing.T) {
	f, err := Allocate[float32](1000)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	for i := 0; i < f.Len(); i++ {
		f.Set(i, float32(i))
	}

	clone, err := f.PartialClone(100, 200)
	if err != nil {
		t.Fatalf("PartialClone: %v", err)
	}

	if clone.Len() != 100 {
		t.Fatalf("clone.Len() = %d, want 100", clone.Len())
	}

	for i := 0; i < clone.Len(); i++ {
		if clone.Get(i) != float32(100+i) {
			t.Fatalf("clone.Get(%d) = %v, want %v", i, clone.Get(i), float32(100+i))
		}
	}

	dst, err := Allocate[float32](1000)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if err := CopySamples(f, dst, 0, 500, 100); err != nil {
		t.Fatalf("CopySamples: %v", err)
	}

	for i := 0; i < 100; i++ {
		if dst.Get(500+i) != float32(i) {
			t.Fatalf("dst.Get(%d) = %v, want %v", 500+i, dst.Get(500+i), float32(i))
		}
	}
}

func TestPartialCloneInvalidRange(t *testing.T) {
	f, err := Allocate[float64](10)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if _, err := f.PartialClone(5, 3); err != ErrInvalidRange {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}

	if _, err := f.PartialClone(0, 20); err != ErrInvalidRange {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestEmptyFunction(t *testing.T) {
	f, err := Allocate[float64](0)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if f.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", f.Len())
	}
}
