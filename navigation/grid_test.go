package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromRows builds a unit-cost grid: '#' blocked, anything else navigable
func gridFromRows(rows ...string) *Grid {
	w, h := len(rows[0]), len(rows)
	costs := make([]float64, w*h)
	var nav []TileRef
	for y, row := range rows {
		for x := 0; x < w; x++ {
			costs[y*w+x] = 1
			if row[x] != '#' {
				nav = append(nav, TileRef(y*w+x))
			}
		}
	}
	return NewGrid(w, h, costs, nav)
}

// openGrid is a w×h grid with every tile navigable at cost 1
func openGrid(w, h int) *Grid {
	costs := make([]float64, w*h)
	nav := make([]TileRef, w*h)
	for i := range costs {
		costs[i] = 1
		nav[i] = TileRef(i)
	}
	return NewGrid(w, h, costs, nav)
}

func TestGrid_CoordinateRoundTrip(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {5, 5}, {7, 3}, {3, 11}} {
		g := openGrid(size[0], size[1])
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				r := g.Ref(x, y)
				assert.Equal(t, x, g.X(r))
				assert.Equal(t, y, g.Y(r))
				assert.Equal(t, r, g.Ref(g.X(r), g.Y(r)))
			}
		}
	}
}

func TestGrid_Neighbors(t *testing.T) {
	g := openGrid(4, 3)

	tests := []struct {
		name string
		x, y int
		want []TileRef
	}{
		{"corner", 0, 0, []TileRef{g.Ref(1, 0), g.Ref(0, 1)}},
		{"edge", 2, 0, []TileRef{g.Ref(3, 0), g.Ref(2, 1), g.Ref(1, 0)}},
		{"interior", 1, 1, []TileRef{g.Ref(1, 0), g.Ref(2, 1), g.Ref(1, 2), g.Ref(0, 1)}},
		{"far corner", 3, 2, []TileRef{g.Ref(3, 1), g.Ref(2, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Neighbors(g.Ref(tt.x, tt.y)))
		})
	}
}

func TestGrid_NeighborsAlwaysInBoundsAndUnique(t *testing.T) {
	g := openGrid(6, 4)
	for r := TileRef(0); int(r) < g.Width()*g.Height(); r++ {
		ns := g.Neighbors(r)
		require.LessOrEqual(t, len(ns), 4)

		seen := make(map[TileRef]bool)
		for _, n := range ns {
			assert.False(t, seen[n], "duplicate neighbour %d of %d", n, r)
			seen[n] = true
			assert.True(t, g.InBounds(g.X(n), g.Y(n)))
			assert.Equal(t, 1, g.ManhattanDist(r, n))
		}
	}
}

func TestGrid_NeighborsIgnoreNavigability(t *testing.T) {
	g := gridFromRows(
		"###",
		"#.#",
		"###",
	)
	assert.Len(t, g.Neighbors(g.Ref(1, 1)), 4)
}

func TestGrid_CostAndNavigability(t *testing.T) {
	g := NewGrid(3, 1, []float64{2, 5}, []TileRef{0})

	assert.Equal(t, 2.0, g.Cost(0))
	assert.Equal(t, 5.0, g.Cost(1))
	assert.Equal(t, 1.0, g.Cost(2), "missing cost entries default to 1")

	assert.True(t, g.IsNavigable(0))
	assert.False(t, g.IsNavigable(1))
	assert.Equal(t, 1, g.NavigableCount())
}

func TestGrid_CopiesInputs(t *testing.T) {
	costs := []float64{1, 1}
	nav := []TileRef{0, 1}
	g := NewGrid(2, 1, costs, nav)

	costs[0] = 9
	nav[1] = 0

	assert.Equal(t, 1.0, g.Cost(0))
	assert.True(t, g.IsNavigable(1))
}

func TestGrid_InBounds(t *testing.T) {
	g := openGrid(3, 2)
	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(2, 1))
	assert.False(t, g.InBounds(3, 0))
	assert.False(t, g.InBounds(0, 2))
	assert.False(t, g.InBounds(-1, 0))
}
