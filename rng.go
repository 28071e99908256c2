package tilesolver

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Rand is one Island's private random source: a ChaCha12-backed, explicitly
// seeded generator (lukechampine.com/frand.NewCustom), chosen over
// math/rand for the same reason the original solver reached for xorshift —
// speed in a hot loop called tens of thousands of times per second — while
// still being fully deterministic given a fixed seed, which math/rand's
// package-level source is not once multiple goroutines touch it.
type Rand struct {
	rng *frand.RNG
}

// NewRand seeds a Rand from a uint64. Two Rands built from the same seed
// produce identical sequences.
func NewRand(seed uint64) *Rand {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], seed)
	return &Rand{rng: frand.NewCustom(b[:], 1024, 12)}
}

// Intn returns a pseudo-random number in [0, n).
func (r *Rand) Intn(n int) int { return r.rng.Intn(n) }

// Shuffle randomizes the order of a slice of length n via swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) { r.rng.Shuffle(n, swap) }
