// Package random provides the seeded generator used to shuffle slot assignments.
//
// Xorshift is fast and reproducible from its seed, which is what replays
// need. It is not cryptographically secure.
package random

import (
	"fmt"
	"time"
)

// fallbackSeed replaces a zero seed, which is a fixed point of xorshift
const fallbackSeed uint64 = 0x9E3779B97F4A7C15

// Xorshift is a 64-bit xorshift generator
type Xorshift struct {
	seed  uint64
	state uint64
}

// New creates a generator from seed
func New(seed uint64) *Xorshift {
	if seed == 0 {
		seed = fallbackSeed
	}
	return &Xorshift{seed: seed, state: seed}
}

// NewFromTime seeds a generator from the wall clock
func NewFromTime() *Xorshift {
	return New(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the generator was created with
func (x *Xorshift) Seed() uint64 {
	return x.seed
}

// Next advances the state and returns it
func (x *Xorshift) Next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// RandInRange returns a value in [lo, hi). Panics when hi <= lo.
func (x *Xorshift) RandInRange(lo, hi uint64) uint64 {
	if hi <= lo {
		panic(fmt.Sprintf("random: empty range [%d, %d)", lo, hi))
	}
	return lo + x.Next()%(hi-lo)
}

// Intn returns a value in [lo, hi) as an int, for slice indexing
func (x *Xorshift) Intn(lo, hi int) int {
	if lo < 0 || hi <= lo {
		panic(fmt.Sprintf("random: empty range [%d, %d)", lo, hi))
	}
	return int(x.RandInRange(uint64(lo), uint64(hi)))
}
