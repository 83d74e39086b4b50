package navigation

// DownsampleFactor is the linear scale between a full grid and its coarse counterpart
// Fixed for the hierarchical search; coarse grids are always built at half resolution
const DownsampleFactor = 2

// Point is an (x,y) pair used while projecting coarse paths to full resolution
type Point struct {
	X, Y int
}

// HierarchicalSearch runs a BidirectionalSearch on the coarse grid and projects
// its result back onto the full grid
type HierarchicalSearch struct {
	full, coarse *Grid
	destination  TileRef
	search       *BidirectionalSearch
}

// NewHierarchicalSearch remaps sources and destination to coarse coordinates and seeds the inner search
func NewHierarchicalSearch(full, coarse *Grid, sources []TileRef, destination TileRef, iterationsPerAdvance, maxAdvanceCalls int) *HierarchicalSearch {
	coarseSources := make([]TileRef, len(sources))
	for i, src := range sources {
		coarseSources[i] = toCoarse(full, coarse, src)
	}

	return &HierarchicalSearch{
		full:        full,
		coarse:      coarse,
		destination: destination,
		search: NewBidirectionalSearch(
			coarseSources,
			toCoarse(full, coarse, destination),
			iterationsPerAdvance,
			maxAdvanceCalls,
			coarse,
		),
	}
}

func toCoarse(full, coarse *Grid, r TileRef) TileRef {
	return coarse.Ref(full.X(r)/DownsampleFactor, full.Y(r)/DownsampleFactor)
}

// Advance has the same contract as BidirectionalSearch.Advance
func (h *HierarchicalSearch) Advance() Result {
	return h.search.Advance()
}

// ReconstructPath returns the full-resolution path, always ending on the exact destination
// Returns nil while the coarse search has not completed
func (h *HierarchicalSearch) ReconstructPath() []TileRef {
	coarsePath := h.search.ReconstructPath()
	if len(coarsePath) == 0 {
		return nil
	}

	points := make([]Point, len(coarsePath))
	for i, r := range coarsePath {
		points[i] = Point{X: h.coarse.X(r), Y: h.coarse.Y(r)}
	}

	smooth := upscalePath(points)
	smooth = append(smooth, Point{X: h.full.X(h.destination), Y: h.full.Y(h.destination)})

	path := make([]TileRef, len(smooth))
	for i, p := range smooth {
		path[i] = h.full.Ref(p.X, p.Y)
	}
	return path
}

// Inner exposes the coarse search for inspection
func (h *HierarchicalSearch) Inner() *BidirectionalSearch { return h.search }

// upscalePath scales points by DownsampleFactor and fills the gaps between consecutive
// points with one interpolated point per unit of Chebyshev distance
func upscalePath(path []Point) []Point {
	if len(path) == 0 {
		return nil
	}

	scaled := make([]Point, len(path))
	for i, p := range path {
		scaled[i] = Point{X: p.X * DownsampleFactor, Y: p.Y * DownsampleFactor}
	}

	smooth := make([]Point, 0, len(scaled)*DownsampleFactor)
	for i := 0; i < len(scaled)-1; i++ {
		cur, next := scaled[i], scaled[i+1]
		smooth = append(smooth, cur)

		dx := next.X - cur.X
		dy := next.Y - cur.Y
		steps := max(absInt(dx), absInt(dy))
		for step := 1; step < steps; step++ {
			smooth = append(smooth, Point{
				X: cur.X + dx*step/steps,
				Y: cur.Y + dy*step/steps,
			})
		}
	}
	smooth = append(smooth, scaled[len(scaled)-1])

	return smooth
}
