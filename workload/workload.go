// Package workload generates the deterministic random index sequence that
// every benchmark case replays. Both cases consume the exact same sequence,
// so measured differences come from the storage representation, not from
// differing access patterns.
package workload

import (
	"errors"
	mrand "math/rand"
)

// ErrInvalidDomain is returned when the index domain is empty: a uniform
// distribution over zero items is undefined.
var ErrInvalidDomain = errors.New("workload: item count must be positive")

// Config controls workload generation parameters.
type Config struct {
	// ItemCount is the size of the boolean domain; every generated index
	// lies in [0, ItemCount).
	ItemCount int

	// AccessCount is the number of indices to generate, one per timed
	// read-modify-write operation.
	AccessCount int

	// Seed for the pseudo-random source. The same seed always yields the
	// same sequence.
	Seed int64
}

// Generator produces deterministic index sequences from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate returns AccessCount indices uniformly distributed over
// [0, ItemCount). A non-positive AccessCount yields an empty sequence.
func (g *Generator) Generate() ([]int, error) {
	if g.cfg.ItemCount <= 0 {
		return nil, ErrInvalidDomain
	}

	n := g.cfg.AccessCount
	if n < 0 {
		n = 0
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = g.rng.Intn(g.cfg.ItemCount)
	}

	return indices, nil
}
