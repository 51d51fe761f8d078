// Package dither supplies the uniform LSB dither the WAVE encoder adds
// before quantising a real sample to an integer PCM depth. The default
// seed is derived from the wall-clock time and process ID each time
// InitDither is called, not hard-coded, so separate sessions don't
// produce identical quantising noise; callers
// that need bit-for-bit reproducible output can seed a Source explicitly
// instead.
package dither

import (
	"encoding/binary"
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Source produces dither samples uniformly distributed in [-0.5, 0.5),
// one LSB wide once scaled by the encoder's quantisation step.
type Source struct {
	rng *rand.Rand
}

// New wraps a PCG source seeded with the given 128-bit seed.
func New(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// InitDither builds a Source from a freshly derived default seed (see
// DefaultSeed). Called explicitly by each editor session's setup, not from
// a package init(), so tests can supply a deterministic Source instead.
func InitDither() *Source {
	s1, s2 := DefaultSeed()

	return New(s1, s2)
}

// DefaultSeed derives a 128-bit seed from the current wall-clock time and
// the PID: blake2b-256 of both, folded into two uint64s.
func DefaultSeed() (uint64, uint64) {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[0:8], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(os.Getpid()))

	sum := blake2b.Sum256(buf[:12])

	return binary.LittleEndian.Uint64(sum[0:8]), binary.LittleEndian.Uint64(sum[8:16])
}

// Sample returns the next dither value in [-0.5, 0.5).
func (s *Source) Sample() float64 {
	return s.rng.Float64() - 0.5
}
