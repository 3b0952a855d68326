// Package dice provides the random source used by loot, encounter and combat
// rolls, plus a scripted source for deterministic tests.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Roller is the subset of *rand.Rand the game rolls against.
type Roller interface {
	Intn(n int) int
	Float64() float64
}

// New returns a seeded pseudo-random source.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Between returns a uniform integer in [lo, hi]. Bounds are swapped when
// given out of order.
func Between(r Roller, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}
