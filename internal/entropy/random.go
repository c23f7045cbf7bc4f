// Package entropy provides the single seeded random stream of a run.
// Every stochastic decision in the simulation draws from one Source so a
// fixed seed reproduces the whole run, run id included.
package entropy

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Source is a deterministic random stream. It is not safe for concurrent use;
// the simulation is single-threaded and owns exactly one.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Intn returns a uniform int in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// IntRange returns a uniform int in [lo, hi], both ends inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Coin returns true with probability one half.
func (s *Source) Coin() bool {
	return s.rng.Intn(2) == 0
}

// Read fills p from the stream so the Source can back io.Reader consumers.
func (s *Source) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.rng.Intn(256))
	}
	return len(p), nil
}

// RunID derives a version-4 UUID from the stream.
func (s *Source) RunID() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// Pick returns a uniformly chosen element of items. Panics on an empty slice;
// callers check length first.
func Pick[T any](s *Source, items []T) T {
	return items[s.Intn(len(items))]
}
