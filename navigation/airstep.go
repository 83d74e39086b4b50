package navigation

// DirectStepPathfinder moves flying units one tile per call straight toward a destination
// It never consults cost or navigability. Stateless; safe to share.
type DirectStepPathfinder struct {
	grid *Grid
}

func NewDirectStepPathfinder(grid *Grid) *DirectStepPathfinder {
	return &DirectStepPathfinder{grid: grid}
}

// NextTile returns the next tile toward destination, or arrived=true when there is nothing to do
// randomSeed drives a weighted coin toward the axis with more remaining distance; callers
// must vary it between calls to avoid oscillating on a fixed choice
func (p *DirectStepPathfinder) NextTile(tile, destination TileRef, randomSeed uint32) (next TileRef, arrived bool) {
	x, y := p.grid.X(tile), p.grid.Y(tile)
	dstX, dstY := p.grid.X(destination), p.grid.Y(destination)

	if x == dstX && y == dstY {
		return tile, true
	}

	nextX, nextY := x, y

	ratio := 1 + absInt(dstY-y)/(absInt(dstX-x)+1)
	preferX := float64(randomSeed%100) < float64(ratio*100)/float64(ratio+1)

	if preferX && x != dstX {
		nextX += sign(dstX - x)
	} else {
		nextY += sign(dstY - y)
	}

	if nextX == x && nextY == y {
		return tile, true
	}
	return p.grid.Ref(nextX, nextY), false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
