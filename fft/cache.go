package fft

import (
	"math"
	"sync"

	"github.com/farcloser/waveforge/sample"
)

// table holds the precomputed twiddle factors for one complex-FFT length N:
// the N/2 Cooley-Tukey butterfly twiddles ω_N^k, k ∈ [0, N/2), and the
// N/2+1 real-interleaved post-processing twiddles ω_2N^j, j ∈ [0, N/2],
// used by the TI SPRA291 packing in fft.go.
type table[R sample.Real] struct {
	n             int
	butterfly     []sample.Complex[R]
	postProcess   []sample.Complex[R]
}

func buildTable[R sample.Real](n int) *table[R] {
	t := &table[R]{
		n:           n,
		butterfly:   make([]sample.Complex[R], n/2),
		postProcess: make([]sample.Complex[R], n/2+1),
	}

	for k := 0; k < n/2; k++ {
		angle := -2 * math.Pi * float64(k) / float64(n)
		s, c := math.Sincos(angle)
		t.butterfly[k] = sample.Complex[R]{Re: R(c), Im: R(s)}
	}

	for j := 0; j <= n/2; j++ {
		angle := -math.Pi * float64(j) / float64(n)
		s, c := math.Sincos(angle)
		t.postProcess[j] = sample.Complex[R]{Re: R(c), Im: R(s)}
	}

	return t
}

// entry lazily builds its table exactly once, guarding against the (here,
// theoretical) case of concurrent first use from more than one goroutine;
// the core itself is specified single-threaded, but the guard costs
// nothing on the steady-state path since it is checked once per distinct N.
type entry[R sample.Real] struct {
	once sync.Once
	tbl  *table[R]
}

// CacheSet is an editor-owned twiddle cache, keyed by complex-FFT length N.
// There is no process-wide global: each open file owns its own CacheSet,
// freed when the file closes.
type CacheSet[R sample.Real] struct {
	mu      sync.Mutex
	entries map[int]*entry[R]
}

// NewCacheSet creates an empty cache set.
func NewCacheSet[R sample.Real]() *CacheSet[R] {
	return &CacheSet[R]{entries: make(map[int]*entry[R])}
}

// Get returns the twiddle table for length n, building it on first use.
func (c *CacheSet[R]) Get(n int) *table[R] {
	c.mu.Lock()
	e, ok := c.entries[n]
	if !ok {
		e = &entry[R]{}
		c.entries[n] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.tbl = buildTable[R](n)
	})

	return e.tbl
}

// Len reports how many distinct lengths have been cached.
func (c *CacheSet[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
