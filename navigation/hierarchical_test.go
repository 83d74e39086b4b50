package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchical_OpenGridEndsOnDestination(t *testing.T) {
	full := openGrid(8, 8)
	coarse := Downsample(full)
	src, dst := full.Ref(0, 0), full.Ref(7, 7)

	h := NewHierarchicalSearch(full, coarse, []TileRef{src}, dst, 100, 10)
	r, _ := runToEnd(t, h, 10)
	require.Equal(t, Completed, r)

	path := h.ReconstructPath()
	require.Len(t, path, 14)
	assert.Equal(t, src, path[0])
	assert.Equal(t, dst, path[len(path)-1])

	// Upscaled section is 4-adjacent; only the final hop onto the exact destination may cut a corner
	for i := 1; i < len(path)-1; i++ {
		assert.Equal(t, 1, full.ManhattanDist(path[i-1], path[i]), "step %d", i)
	}
	last, prev := path[len(path)-1], path[len(path)-2]
	assert.LessOrEqual(t, absInt(full.X(last)-full.X(prev)), 1)
	assert.LessOrEqual(t, absInt(full.Y(last)-full.Y(prev)), 1)
}

func TestHierarchical_AnyDestinationOnOddGrid(t *testing.T) {
	full := openGrid(7, 5)
	coarse := Downsample(full)
	src := full.Ref(0, 0)

	for y := 0; y < full.Height(); y++ {
		for x := 0; x < full.Width(); x++ {
			dst := full.Ref(x, y)
			h := NewHierarchicalSearch(full, coarse, []TileRef{src}, dst, 100, 10)
			r, _ := runToEnd(t, h, 10)
			require.Equal(t, Completed, r, "dst (%d,%d)", x, y)

			path := h.ReconstructPath()
			require.NotEmpty(t, path)
			assert.Equal(t, dst, path[len(path)-1], "dst (%d,%d)", x, y)
			for _, p := range path {
				assert.True(t, full.InBounds(full.X(p), full.Y(p)))
			}
		}
	}
}

func TestHierarchical_EmptyBeforeCompletion(t *testing.T) {
	full := openGrid(40, 2)
	coarse := Downsample(full)

	h := NewHierarchicalSearch(full, coarse, []TileRef{full.Ref(0, 0)}, full.Ref(39, 1), 1, 100)
	assert.Nil(t, h.ReconstructPath())
	require.Equal(t, Pending, h.Advance())
	assert.Nil(t, h.ReconstructPath())
}

func TestHierarchical_UnreachableCoarse(t *testing.T) {
	// Full-height wall two tiles thick splits the coarse grid as well
	full := gridFromRows(
		"..##..",
		"..##..",
		"..##..",
		"..##..",
	)
	coarse := Downsample(full)

	h := NewHierarchicalSearch(full, coarse, []TileRef{full.Ref(0, 0)}, full.Ref(5, 3), 100, 10)
	r, _ := runToEnd(t, h, 10)
	assert.Equal(t, PathNotFound, r)
	assert.Nil(t, h.ReconstructPath())
}

func TestHierarchical_InnerSearchesCoarseGrid(t *testing.T) {
	full := openGrid(9, 9)
	coarse := Downsample(full)

	h := NewHierarchicalSearch(full, coarse, []TileRef{full.Ref(8, 8)}, full.Ref(3, 1), 10, 10)
	inner := h.Inner()
	assert.Equal(t, coarse.Ref(4, 4), inner.ClosestSource())
}

func TestUpscalePath(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{"empty", nil, nil},
		{"single", []Point{{1, 2}}, []Point{{2, 4}}},
		{
			"orthogonal",
			[]Point{{0, 0}, {1, 0}, {1, 1}},
			[]Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}},
		},
		{
			"diagonal",
			[]Point{{0, 0}, {1, 1}},
			[]Point{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			"long jump",
			[]Point{{0, 0}, {2, 1}},
			[]Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upscalePath(tt.in))
		})
	}
}
