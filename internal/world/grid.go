// Package world provides the square lattice the agents live on.
// Cells hold any number of occupants; neighborhoods are Moore
// neighborhoods of configurable radius on a bounded or toroidal grid.
package world

import (
	"errors"
	"fmt"
	"slices"
)

// OccupantID identifies whatever is placed on the grid.
type OccupantID uint64

var (
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrAlreadyPlaced = errors.New("occupant already placed")
	ErrNotPlaced     = errors.New("occupant not on grid")
)

// Coord is a cell position. X runs 0..Width-1, Y runs 0..Height-1.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a fixed-size lattice of multi-occupancy cells.
// Occupants keep their insertion order within a cell.
type Grid struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Torus  bool `json:"torus"`

	cells     [][]OccupantID
	positions map[OccupantID]Coord
}

// NewGrid creates an empty width×height grid.
func NewGrid(width, height int, torus bool) *Grid {
	return &Grid{
		Width:     width,
		Height:    height,
		Torus:     torus,
		cells:     make([][]OccupantID, width*height),
		positions: make(map[OccupantID]Coord),
	}
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Coords returns every cell coordinate, x-major then y.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, 0, g.Width*g.Height)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			out = append(out, Coord{X: x, Y: y})
		}
	}
	return out
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Width + c.X
}

// normalize wraps c on a torus. The bool is false when c is off a bounded grid.
func (g *Grid) normalize(c Coord) (Coord, bool) {
	if g.Torus {
		c.X = ((c.X % g.Width) + g.Width) % g.Width
		c.Y = ((c.Y % g.Height) + g.Height) % g.Height
		return c, true
	}
	return c, g.InBounds(c)
}

// Place puts id into cell c.
func (g *Grid) Place(id OccupantID, c Coord) error {
	if _, ok := g.positions[id]; ok {
		return fmt.Errorf("place %d: %w", id, ErrAlreadyPlaced)
	}
	if !g.InBounds(c) {
		return fmt.Errorf("place %d at %s: %w", id, c, ErrOutOfBounds)
	}
	i := g.index(c)
	g.cells[i] = append(g.cells[i], id)
	g.positions[id] = c
	return nil
}

// Remove takes id off the grid.
func (g *Grid) Remove(id OccupantID) error {
	c, ok := g.positions[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrNotPlaced)
	}
	i := g.index(c)
	g.cells[i] = slices.DeleteFunc(g.cells[i], func(o OccupantID) bool { return o == id })
	delete(g.positions, id)
	return nil
}

// Move relocates id to cell c.
func (g *Grid) Move(id OccupantID, c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("move %d to %s: %w", id, c, ErrOutOfBounds)
	}
	if err := g.Remove(id); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	return g.Place(id, c)
}

// Position returns the cell holding id.
func (g *Grid) Position(id OccupantID) (Coord, bool) {
	c, ok := g.positions[id]
	return c, ok
}

// Cell returns a copy of the occupants of c in insertion order.
func (g *Grid) Cell(c Coord) []OccupantID {
	if !g.InBounds(c) {
		return nil
	}
	return slices.Clone(g.cells[g.index(c)])
}

// IsEmpty reports whether c has no occupants.
func (g *Grid) IsEmpty(c Coord) bool {
	return g.InBounds(c) && len(g.cells[g.index(c)]) == 0
}

// Len returns the number of placed occupants.
func (g *Grid) Len() int {
	return len(g.positions)
}

// Neighborhood returns the Moore neighborhood of c with the given radius.
// Off-grid cells are dropped on a bounded grid; on a torus wrapped
// duplicates are collapsed.
func (g *Grid) Neighborhood(c Coord, radius int, includeCenter bool) []Coord {
	side := 2*radius + 1
	out := make([]Coord, 0, side*side)
	var seen map[Coord]bool
	if g.Torus {
		seen = make(map[Coord]bool, side*side)
	}
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 && !includeCenter {
				continue
			}
			n, ok := g.normalize(Coord{X: c.X + dx, Y: c.Y + dy})
			if !ok {
				continue
			}
			if seen != nil {
				if seen[n] || (n == c && !includeCenter) {
					continue
				}
				seen[n] = true
			}
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns the occupants of the Moore neighborhood of c.
func (g *Grid) Neighbors(c Coord, radius int, includeCenter bool) []OccupantID {
	var out []OccupantID
	for _, n := range g.Neighborhood(c, radius, includeCenter) {
		out = append(out, g.cells[g.index(n)]...)
	}
	return out
}

// Check verifies that every placed occupant sits in exactly one cell and
// that every cell agrees with the stored positions.
func (g *Grid) Check() error {
	seen := make(map[OccupantID]Coord, len(g.positions))
	for i, cell := range g.cells {
		c := Coord{X: i % g.Width, Y: i / g.Width}
		for _, id := range cell {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("occupant %d in cells %s and %s", id, prev, c)
			}
			seen[id] = c
			if pos, ok := g.positions[id]; !ok || pos != c {
				return fmt.Errorf("occupant %d in cell %s but recorded at %v", id, c, pos)
			}
		}
	}
	if len(seen) != len(g.positions) {
		return fmt.Errorf("%d occupants recorded, %d found in cells", len(g.positions), len(seen))
	}
	return nil
}
