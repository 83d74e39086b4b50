package navigation

// TileRef is a flat tile index: y*width + x
type TileRef uint32

// Orthogonal neighbour offsets in enumeration order: up, right, down, left
var neighborOffsets = [4][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Grid holds static terrain facts for one map resolution
// Immutable after construction, safe to share by reference between searches
type Grid struct {
	width, height int
	costs         []float64
	navigable     map[TileRef]struct{}
}

// NewGrid copies costs and navigable tiles into a new grid
// costs may be shorter than width*height; missing entries read as 1.0
func NewGrid(width, height int, costs []float64, navigable []TileRef) *Grid {
	g := &Grid{
		width:     width,
		height:    height,
		costs:     make([]float64, len(costs)),
		navigable: make(map[TileRef]struct{}, len(navigable)),
	}
	copy(g.costs, costs)
	for _, r := range navigable {
		g.navigable[r] = struct{}{}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Ref encodes (x,y); coordinates are not validated
func (g *Grid) Ref(x, y int) TileRef {
	return TileRef(y*g.width + x)
}

func (g *Grid) X(r TileRef) int {
	return int(r) % g.width
}

func (g *Grid) Y(r TileRef) int {
	return int(r) / g.width
}

// InBounds reports whether (x,y) lies within [0,width)×[0,height)
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Cost returns traversal cost, 1.0 beyond the cost table
func (g *Grid) Cost(r TileRef) float64 {
	if int(r) < len(g.costs) {
		return g.costs[r]
	}
	return 1.0
}

func (g *Grid) IsNavigable(r TileRef) bool {
	_, ok := g.navigable[r]
	return ok
}

// NavigableCount returns the size of the navigable set
func (g *Grid) NavigableCount() int {
	return len(g.navigable)
}

// Neighbors returns the in-bounds orthogonal neighbours of r in up, right, down, left order
func (g *Grid) Neighbors(r TileRef) []TileRef {
	return g.NeighborsInto(r, make([]TileRef, 0, 4))
}

// NeighborsInto appends neighbours of r to buf[:0] and returns it
func (g *Grid) NeighborsInto(r TileRef, buf []TileRef) []TileRef {
	buf = buf[:0]
	cx, cy := g.X(r), g.Y(r)
	for _, d := range neighborOffsets {
		nx, ny := cx+d[0], cy+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		buf = append(buf, g.Ref(nx, ny))
	}
	return buf
}

// ManhattanDist returns |dx|+|dy| between two tiles
func (g *Grid) ManhattanDist(a, b TileRef) int {
	return absInt(g.X(a)-g.X(b)) + absInt(g.Y(a)-g.Y(b))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
