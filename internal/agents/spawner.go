// Agent spawning: creates the initial population with randomized
// hardship, risk aversion and starting wallet.
package agents

import (
	"math"

	"github.com/talgya/unrest/internal/entropy"
	"github.com/talgya/unrest/internal/world"
)

// SpawnConfig controls initial citizen attributes.
type SpawnConfig struct {
	RichThreshold float64
	// HardshipNoise blends a regional noise field into initial hardship:
	// 0 is purely uniform, 1 is purely regional.
	HardshipNoise float64
	Field         *world.Field
}

// Spawner creates agents with sequential ids, drawing from the run's stream.
type Spawner struct {
	rng    *entropy.Source
	cfg    SpawnConfig
	nextID AgentID
}

// NewSpawner creates a spawner. Ids start at 1.
func NewSpawner(rng *entropy.Source, cfg SpawnConfig) *Spawner {
	return &Spawner{
		rng:    rng,
		cfg:    cfg,
		nextID: 1,
	}
}

// NextID returns the id the next spawned agent will get.
func (s *Spawner) NextID() AgentID {
	return s.nextID
}

// SpawnCop creates a cop.
func (s *Spawner) SpawnCop() *Cop {
	id := s.nextID
	s.nextID++
	return NewCop(id)
}

// SpawnCitizen creates a citizen for cell c. Wallet is a whole amount in
// [1, rich threshold + 1].
func (s *Spawner) SpawnCitizen(c world.Coord) *Citizen {
	id := s.nextID
	s.nextID++

	hardship := s.rng.Float()
	if w := s.cfg.HardshipNoise; w > 0 && s.cfg.Field != nil {
		hardship = (1-w)*hardship + w*s.cfg.Field.At(c)
	}
	riskAversion := s.rng.Float()
	wallet := s.rng.IntRange(1, int(math.Floor(s.cfg.RichThreshold))+1)

	return NewCitizen(id, hardship, riskAversion, float64(wallet))
}
