package core

import (
	"errors"
	"time"
)

const (
	lcgModulus    = 2147483647
	lcgMultiplier = 48271

	// DefaultSeed is substituted wherever a seed is missing or invalid.
	DefaultSeed Seed = 112358
)

// ErrZeroSeed is returned when a seed reduces to the fixed point 0.
var ErrZeroSeed = errors.New("core: seed must be non-zero modulo 2147483647")

// Seed is the complete state of the Lehmer generator used by the simulation.
// It is stored inside the game state so a save resumes the exact sequence.
type Seed int64

// NewSeed reduces v into the generator's range. A value that reduces to 0
// is rejected because 0 is a fixed point of the recurrence.
func NewSeed(v int64) (Seed, error) {
	r := v % lcgModulus
	if r < 0 {
		r = -r
	}
	if r == 0 {
		return 0, ErrZeroSeed
	}
	return Seed(r), nil
}

// SeedOrDefault is NewSeed with DefaultSeed substituted for invalid input.
func SeedOrDefault(v int64) Seed {
	s, err := NewSeed(v)
	if err != nil {
		return DefaultSeed
	}
	return s
}

// TimeSeed derives a seed from the wall clock.
func TimeSeed() Seed {
	return SeedOrDefault(time.Now().UnixNano())
}

// Valid reports whether s can drive the generator.
func (s Seed) Valid() bool {
	return s > 0 && s < lcgModulus
}

// Next advances the generator and returns a value in [0, 1).
// An invalid seed is replaced with DefaultSeed before drawing.
func (s *Seed) Next() float64 {
	if !s.Valid() {
		*s = DefaultSeed
	}
	next := (int64(*s) * lcgMultiplier) % lcgModulus
	*s = Seed(next)
	return float64(next) / lcgModulus
}

// Between returns min + (max-min)*Next().
func (s *Seed) Between(min, max float64) float64 {
	return min + (max-min)*s.Next()
}

// Index draws an integer in [0, n). n must be positive.
func (s *Seed) Index(n int) int {
	i := int(s.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
