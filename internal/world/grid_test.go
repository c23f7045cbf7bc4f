package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_PlaceMoveRemove(t *testing.T) {
	g := NewGrid(5, 5, false)

	require.NoError(t, g.Place(1, Coord{X: 2, Y: 2}))
	require.NoError(t, g.Place(2, Coord{X: 2, Y: 2}))
	assert.Equal(t, []OccupantID{1, 2}, g.Cell(Coord{X: 2, Y: 2}))
	assert.Equal(t, 2, g.Len())

	require.NoError(t, g.Move(1, Coord{X: 0, Y: 4}))
	pos, ok := g.Position(1)
	require.True(t, ok)
	assert.Equal(t, Coord{X: 0, Y: 4}, pos)
	assert.Equal(t, []OccupantID{2}, g.Cell(Coord{X: 2, Y: 2}))

	require.NoError(t, g.Remove(2))
	assert.True(t, g.IsEmpty(Coord{X: 2, Y: 2}))
	_, ok = g.Position(2)
	assert.False(t, ok)
	assert.NoError(t, g.Check())
}

func TestGrid_Errors(t *testing.T) {
	g := NewGrid(3, 3, false)
	require.NoError(t, g.Place(1, Coord{X: 0, Y: 0}))

	assert.ErrorIs(t, g.Place(1, Coord{X: 1, Y: 1}), ErrAlreadyPlaced)
	assert.ErrorIs(t, g.Place(2, Coord{X: 3, Y: 0}), ErrOutOfBounds)
	assert.ErrorIs(t, g.Remove(9), ErrNotPlaced)
	assert.ErrorIs(t, g.Move(9, Coord{X: 1, Y: 1}), ErrNotPlaced)
	assert.ErrorIs(t, g.Move(1, Coord{X: -1, Y: 1}), ErrOutOfBounds)

	pos, _ := g.Position(1)
	assert.Equal(t, Coord{X: 0, Y: 0}, pos, "failed move must not relocate")
}

func TestGrid_NeighborhoodBounded(t *testing.T) {
	g := NewGrid(5, 5, false)

	assert.Len(t, g.Neighborhood(Coord{X: 0, Y: 0}, 1, false), 3)
	assert.Len(t, g.Neighborhood(Coord{X: 0, Y: 0}, 1, true), 4)
	assert.Len(t, g.Neighborhood(Coord{X: 2, Y: 2}, 1, false), 8)
	assert.Len(t, g.Neighborhood(Coord{X: 2, Y: 2}, 2, true), 25)
	assert.NotContains(t, g.Neighborhood(Coord{X: 2, Y: 2}, 1, false), Coord{X: 2, Y: 2})
}

func TestGrid_NeighborhoodTorus(t *testing.T) {
	g := NewGrid(5, 5, true)

	n := g.Neighborhood(Coord{X: 0, Y: 0}, 1, false)
	assert.Len(t, n, 8)
	assert.Contains(t, n, Coord{X: 4, Y: 4})

	small := NewGrid(2, 2, true)
	assert.Len(t, small.Neighborhood(Coord{X: 0, Y: 0}, 1, false), 3)
	assert.Len(t, small.Neighborhood(Coord{X: 0, Y: 0}, 1, true), 4)
}

func TestGrid_Neighbors(t *testing.T) {
	g := NewGrid(5, 5, false)
	require.NoError(t, g.Place(1, Coord{X: 1, Y: 1}))
	require.NoError(t, g.Place(2, Coord{X: 2, Y: 2}))
	require.NoError(t, g.Place(3, Coord{X: 4, Y: 4}))
	require.NoError(t, g.Place(4, Coord{X: 1, Y: 1}))

	got := g.Neighbors(Coord{X: 1, Y: 1}, 1, false)
	assert.ElementsMatch(t, []OccupantID{2}, got)

	got = g.Neighbors(Coord{X: 1, Y: 1}, 1, true)
	assert.ElementsMatch(t, []OccupantID{1, 2, 4}, got)
}

func TestGrid_CoordsOrder(t *testing.T) {
	g := NewGrid(2, 3, false)
	assert.Equal(t, []Coord{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2},
	}, g.Coords())
}

func TestField_RangeAndDeterminism(t *testing.T) {
	a := NewField(42)
	b := NewField(42)
	g := NewGrid(10, 10, false)
	for _, c := range g.Coords() {
		v := a.At(c)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.At(c))
	}
}
