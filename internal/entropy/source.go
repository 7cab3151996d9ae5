// Package entropy provides the injectable randomness source for simulation
// runs. A run seeded from a deterministic source is bit-reproducible; the
// default unseeded sources preserve the snowflake property where identical
// concentrations never produce identical configurations.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source yields uniform random floats. One Source belongs to exactly one
// simulation run; implementations are not required to be safe for
// concurrent use.
type Source interface {
	// Float returns a uniform random float64 in [0, 1).
	Float() float64
}

// Range returns a uniform draw in [lo, hi) from the source.
func Range(s Source, lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// SeededSource is a deterministic PRNG source. Two runs with the same seed
// and the same inputs produce identical configurations.
type SeededSource struct {
	rng *mathrand.Rand
}

// Seeded creates a deterministic source from a seed.
func Seeded(seed int64) *SeededSource {
	return &SeededSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Float returns a uniform float64 in [0, 1).
func (s *SeededSource) Float() float64 {
	return s.rng.Float64()
}

// CryptoSource draws from crypto/rand. Used as the default when no seed and
// no true-randomness client is configured.
type CryptoSource struct{}

// Float returns a uniform float64 in [0, 1).
func (CryptoSource) Float() float64 {
	return cryptoRandFloat()
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
