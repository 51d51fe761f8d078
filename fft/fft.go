// Package fft implements the real-interleaved FFT engine: a real sequence
// of length 2N is packed into a length-N complex sequence, transformed with
// an in-place radix-2 Cooley-Tukey complex FFT, and post-processed with the
// TI SPRA291 real-FFT formula to recover the spectrum of the original real
// sequence, with DC and Nyquist packed together into bin 0.
package fft

import (
	"math/bits"

	"github.com/farcloser/waveforge/sample"
)

// Forward computes the real-interleaved DFT of f in place. f is treated as
// N complex samples f[k] = g[2k] + i·g[2k+1] for the underlying real
// sequence g of length 2N; on return f holds the first N bins of the true
// spectrum G of g, with G[0] (DC) and G[N] (Nyquist) packed into the real
// and imaginary parts of f[0] respectively. N must be a power of two, N≥4,
// and f.Len() must equal N exactly. Unnormalised: composing with Inverse
// recovers the original values up to floating-point rounding, without an
// extra ÷N (Inverse divides once).
func Forward[R sample.Real](cache *CacheSet[R], f *sample.Function[sample.Complex[R]]) error {
	n := f.Len()
	if err := validateLength(n); err != nil {
		return err
	}

	tbl := cache.Get(n)

	bitReverse(f, n)
	butterflyPasses(f, n, tbl.butterfly, false)
	postProcessForward(f, n, tbl.postProcess)

	return nil
}

// Inverse is the exact inverse of Forward: given the packed spectrum in f,
// recovers the N complex samples that alias the original 2N real values.
// Divides by N once, at the end.
func Inverse[R sample.Real](cache *CacheSet[R], f *sample.Function[sample.Complex[R]]) error {
	n := f.Len()
	if err := validateLength(n); err != nil {
		return err
	}

	tbl := cache.Get(n)

	postProcessInverse(f, n, tbl.postProcess)
	bitReverse(f, n)
	butterflyPasses(f, n, tbl.butterfly, true)
	normalize(f, n)

	return nil
}

func validateLength(n int) error {
	if n < 4 {
		return ErrTooShort
	}

	if n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}

	return nil
}

func bitReverse[R sample.Real](f *sample.Function[sample.Complex[R]], n int) {
	logN := bits.TrailingZeros(uint(n))

	for i := 0; i < n; i++ {
		j := int(bits.Reverse(uint(i)) >> (bits.UintSize - logN))
		if j > i {
			a, b := f.Get(i), f.Get(j)
			f.Set(i, b)
			f.Set(j, a)
		}
	}
}

// butterflyPasses runs the log2(N) decimation-in-time Cooley-Tukey passes.
// When inverse is true, the cached forward twiddles are conjugated so the
// transform runs e^{+2πi·kn/N} instead of e^{-2πi·kn/N}; normalization by N
// happens separately, in normalize.
func butterflyPasses[R sample.Real](
	f *sample.Function[sample.Complex[R]], n int, twiddles []sample.Complex[R], inverse bool,
) {
	logN := bits.TrailingZeros(uint(n))

	for s := 1; s <= logN; s++ {
		m := 1 << s
		half := m / 2
		step := n / m

		for k := 0; k < n; k += m {
			for j := 0; j < half; j++ {
				w := twiddles[j*step]
				if inverse {
					w = w.Conj()
				}

				idxA, idxB := k+j, k+j+half

				a := f.Get(idxA)
				b := f.Get(idxB)
				t := b.Mul(w)

				f.Set(idxA, a.Add(t))
				f.Set(idxB, a.Sub(t))
			}
		}
	}
}

func normalize[R sample.Real](f *sample.Function[sample.Complex[R]], n int) {
	inv := R(1) / R(n)

	for i := 0; i < n; i++ {
		f.Set(i, f.Get(i).Scale(inv))
	}
}

// postProcessForward reconstructs the packed real-FFT spectrum G from the
// N-point complex FFT output F, per the TI SPRA291 formula
//
//	G[k] = ½(F[k] + F*[N-k]) − (i/2)(F[k] − F*[N-k])·ω_2N^k
//
// with G[0] and G[N] (DC/Nyquist) packed into bin 0, and the paired bins
// (j, N-j) for j ∈ [1, N/2) computed together from shared even/odd parts.
func postProcessForward[R sample.Real](
	f *sample.Function[sample.Complex[R]], n int, post []sample.Complex[R],
) {
	f0 := f.Get(0)
	f.Set(0, sample.Complex[R]{Re: f0.Re + f0.Im, Im: f0.Re - f0.Im})

	half := n / 2

	for j := 1; j < half; j++ {
		fj := f.Get(j)
		fnj := f.Get(n - j)

		even := sample.Complex[R]{
			Re: (fj.Re + fnj.Re) / 2,
			Im: (fj.Im - fnj.Im) / 2,
		}
		halfDiff := sample.Complex[R]{
			Re: (fj.Re - fnj.Re) / 2,
			Im: (fj.Im + fnj.Im) / 2,
		}
		// odd = -i * halfDiff
		odd := sample.Complex[R]{Re: halfDiff.Im, Im: -halfDiff.Re}

		w := post[j]
		o := odd.Mul(w)

		gj := even.Add(o)
		gnj := even.Sub(o).Conj()

		f.Set(j, gj)
		f.Set(n-j, gnj)
	}

	mid := f.Get(half)
	f.Set(half, mid.Conj())
}

// postProcessInverse is the exact inverse of postProcessForward: recovers
// the N-point complex FFT input F from the packed real-FFT spectrum G.
func postProcessInverse[R sample.Real](
	f *sample.Function[sample.Complex[R]], n int, post []sample.Complex[R],
) {
	g0 := f.Get(0)
	dc, nyquist := g0.Re, g0.Im
	f.Set(0, sample.Complex[R]{Re: (dc + nyquist) / 2, Im: (dc - nyquist) / 2})

	half := n / 2

	for j := 1; j < half; j++ {
		gj := f.Get(j)
		gnj := f.Get(n - j)

		even := sample.Complex[R]{
			Re: (gj.Re + gnj.Re) / 2,
			Im: (gj.Im - gnj.Im) / 2,
		}
		oddW := sample.Complex[R]{
			Re: (gj.Re - gnj.Re) / 2,
			Im: (gj.Im + gnj.Im) / 2,
		}

		w := post[j]
		odd := oddW.Mul(w.Conj())

		fj := sample.Complex[R]{
			Re: even.Re - odd.Im,
			Im: even.Im + odd.Re,
		}
		fnj := sample.Complex[R]{
			Re: even.Re + odd.Im,
			Im: -even.Im + odd.Re,
		}

		f.Set(j, fj)
		f.Set(n-j, fnj)
	}

	mid := f.Get(half)
	f.Set(half, mid.Conj())
}
