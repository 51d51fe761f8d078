package fft

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/farcloser/waveforge/sample"
)

// TestInverseLawProperty checks the FFT inverse law from the testable
// properties: for any real length 2N with N a power of two, Inverse(Forward(f))
// equals f element-wise within a tolerance proportional to the length.
func TestInverseLawProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		logN := rapid.IntRange(2, 12).Draw(rt, "logN") // N in [4, 4096]
		n := 1 << logN

		vals := rapid.SliceOfN(rapid.Float64Range(-1, 1), 2*n, 2*n).Draw(rt, "vals")

		f, err := sample.Allocate[sample.Complex[float64]](n)
		if err != nil {
			rt.Fatalf("Allocate: %v", err)
		}

		for k := 0; k < n; k++ {
			f.Set(k, sample.Complex[float64]{Re: vals[2*k], Im: vals[2*k+1]})
		}

		cache := NewCacheSet[float64]()

		if err := Forward(cache, f); err != nil {
			rt.Fatalf("Forward: %v", err)
		}

		if err := Inverse(cache, f); err != nil {
			rt.Fatalf("Inverse: %v", err)
		}

		view := sample.ReadComplexAsReal(f)

		tol := float64(2*n) * 1e-10

		for i := 0; i < view.Len(); i++ {
			got := view.Get(i)
			if math.Abs(got-vals[i]) > tol {
				rt.Fatalf("element %d: got %v, want %v (tol %v)", i, got, vals[i], tol)
			}
		}
	})
}
