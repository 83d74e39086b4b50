package navigation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chebyshev(g *Grid, a, b TileRef) int {
	return max(absInt(g.X(a)-g.X(b)), absInt(g.Y(a)-g.Y(b)))
}

func TestDirectStep_ArrivedAtDestination(t *testing.T) {
	g := openGrid(10, 10)
	p := NewDirectStepPathfinder(g)

	for _, seed := range []uint32{0, 1, 49, 50, 99, 12345} {
		next, arrived := p.NextTile(g.Ref(3, 4), g.Ref(3, 4), seed)
		assert.True(t, arrived)
		assert.Equal(t, g.Ref(3, 4), next)
	}
}

func TestDirectStep_CoinPicksAxis(t *testing.T) {
	g := openGrid(10, 10)
	p := NewDirectStepPathfinder(g)
	src, dst := g.Ref(2, 2), g.Ref(5, 5)

	// ratio 1 gives a 50/50 coin at threshold 50
	next, arrived := p.NextTile(src, dst, 0)
	require.False(t, arrived)
	assert.Equal(t, g.Ref(3, 2), next)

	next, arrived = p.NextTile(src, dst, 99)
	require.False(t, arrived)
	assert.Equal(t, g.Ref(2, 3), next)
}

func TestDirectStep_MovesTowardDestinationInEveryQuadrant(t *testing.T) {
	g := openGrid(9, 9)
	p := NewDirectStepPathfinder(g)
	center := g.Ref(4, 4)

	for _, d := range []TileRef{g.Ref(0, 0), g.Ref(8, 0), g.Ref(0, 8), g.Ref(8, 8)} {
		for seed := uint32(0); seed < 100; seed++ {
			next, arrived := p.NextTile(center, d, seed)
			require.False(t, arrived)
			assert.Equal(t, g.ManhattanDist(center, d)-1, g.ManhattanDist(next, d))
		}
	}
}

func TestDirectStep_AlignedOnXOnlyMovesY(t *testing.T) {
	g := openGrid(5, 10)
	p := NewDirectStepPathfinder(g)

	for seed := uint32(0); seed < 100; seed++ {
		next, arrived := p.NextTile(g.Ref(2, 1), g.Ref(2, 8), seed)
		require.False(t, arrived)
		assert.Equal(t, g.Ref(2, 2), next)
	}
}

func TestDirectStep_AlignedOnYCanStall(t *testing.T) {
	g := openGrid(10, 5)
	p := NewDirectStepPathfinder(g)
	src, dst := g.Ref(1, 2), g.Ref(8, 2)

	// Seed on the y side of the coin: nothing to do on that axis, reported as arrival in place
	next, arrived := p.NextTile(src, dst, 99)
	assert.True(t, arrived)
	assert.Equal(t, src, next)

	next, arrived = p.NextTile(src, dst, 0)
	assert.False(t, arrived)
	assert.Equal(t, g.Ref(2, 2), next)
}

func TestDirectStep_IgnoresTerrain(t *testing.T) {
	g := gridFromRows(
		".#.",
		"###",
		".#.",
	)
	p := NewDirectStepPathfinder(g)

	next, arrived := p.NextTile(g.Ref(0, 0), g.Ref(2, 0), 0)
	require.False(t, arrived)
	assert.Equal(t, g.Ref(1, 0), next)
}

func TestDirectStep_ConvergesWithVaryingSeeds(t *testing.T) {
	g := openGrid(64, 64)
	p := NewDirectStepPathfinder(g)
	rng := rand.New(rand.NewSource(7))

	src, dst := g.Ref(3, 60), g.Ref(50, 9)
	start := chebyshev(g, src, dst)

	cur := src
	for i := 0; i < 1000 && cur != dst; i++ {
		next, arrived := p.NextTile(cur, dst, rng.Uint32())
		if arrived {
			continue
		}
		require.Less(t, chebyshev(g, next, dst), start+1)
		cur = next
	}
	assert.Equal(t, dst, cur)
}

func TestDirectStep_AverageProgress(t *testing.T) {
	g := openGrid(64, 64)
	p := NewDirectStepPathfinder(g)
	rng := rand.New(rand.NewSource(11))

	tile, dst := g.Ref(10, 10), g.Ref(40, 55)
	before := chebyshev(g, tile, dst)

	total := 0
	const samples = 2000
	for i := 0; i < samples; i++ {
		next, _ := p.NextTile(tile, dst, rng.Uint32())
		total += before - chebyshev(g, next, dst)
	}
	assert.Positive(t, total, "direct steps should shrink Chebyshev distance on average")
}
