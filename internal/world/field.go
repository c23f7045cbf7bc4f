// Hardship field: layered simplex noise sampled per cell, used to give
// initial hardship a regional shape.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field samples smooth noise in [0, 1] over grid coordinates.
type Field struct {
	noise       opensimplex.Noise
	Octaves     int
	Frequency   float64
	Persistence float64
}

// NewField creates a noise field for the given seed.
func NewField(seed int64) *Field {
	return &Field{
		noise:       opensimplex.NewNormalized(seed),
		Octaves:     3,
		Frequency:   0.08,
		Persistence: 0.5,
	}
}

// At returns the field value at c.
func (f *Field) At(c Coord) float64 {
	v := octaveNoise(f.noise, float64(c.X), float64(c.Y), f.Octaves, f.Frequency, f.Persistence)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}
