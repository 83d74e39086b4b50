package navigation

import (
	"github.com/lixenwraith/tilepath/parameter"
)

// Search is a resumable path computation
type Search interface {
	Advance() Result
	ReconstructPath() []TileRef
}

// SearchFactory starts a search from curr to dst
type SearchFactory func(curr, dst TileRef) Search

// PathFinder caches one unit's path and hands it out a tile per call
// A new search starts only when the cache runs dry or the destination drifts past tolerance
type PathFinder struct {
	grid      *Grid
	newSearch SearchFactory

	curr, dst TileRef
	path      []TileRef
	hasPath   bool
	search    Search
	computing bool

	// OnFinish, when set, observes each search's terminal result
	OnFinish func(s Search, r Result)
}

// NewPathFinder searches the full grid directly
func NewPathFinder(grid *Grid, iterations, maxTries int) *PathFinder {
	return NewPathFinderWith(grid, func(curr, dst TileRef) Search {
		return NewBidirectionalSearch([]TileRef{curr}, dst, iterations, maxTries, grid)
	})
}

// NewMiniPathFinder searches the coarse grid and projects paths onto the full grid
func NewMiniPathFinder(full, coarse *Grid, iterations, maxTries int) *PathFinder {
	return NewPathFinderWith(full, func(curr, dst TileRef) Search {
		return NewHierarchicalSearch(full, coarse, []TileRef{curr}, dst, iterations, maxTries)
	})
}

// NewPathFinderWith uses a caller-supplied search factory; grid is used for distances
func NewPathFinderWith(grid *Grid, factory SearchFactory) *PathFinder {
	return &PathFinder{grid: grid, newSearch: factory}
}

// NextTile returns the next step from curr toward dst
// dist is the arrival radius in Manhattan tiles; values below 1 use the default
func (p *PathFinder) NextTile(curr, dst TileRef, dist int) TileResult {
	if dist < 1 {
		dist = parameter.NavArrivalDistanceDefault
	}

	if p.grid.ManhattanDist(curr, dst) < dist {
		return TileResult{Type: Completed, Tile: curr}
	}

	if !p.computing {
		if !p.shouldRecompute(curr, dst) {
			next := p.path[0]
			p.path = p.path[1:]
			return TileResult{Type: NextTile, Tile: next}
		}
		p.curr = curr
		p.dst = dst
		p.path = nil
		p.hasPath = false
		p.search = p.newSearch(curr, dst)
		p.computing = true
	}

	switch r := p.search.Advance(); r {
	case Completed:
		p.finish(r)
		path := p.search.ReconstructPath()
		// Drop the start tile
		if len(path) > 0 {
			path = path[1:]
		}
		p.path = path
		p.hasPath = true
		if len(p.path) == 0 {
			return TileResult{Type: Completed, Tile: curr}
		}
		return p.NextTile(curr, dst, dist)
	case Pending:
		return TileResult{Type: Pending}
	default:
		p.finish(PathNotFound)
		return TileResult{Type: PathNotFound}
	}
}

func (p *PathFinder) finish(r Result) {
	p.computing = false
	if p.OnFinish != nil {
		p.OnFinish(p.search, r)
	}
}

// shouldRecompute reports whether the cached path is missing, used up, or aimed at a stale destination
func (p *PathFinder) shouldRecompute(curr, dst TileRef) bool {
	if !p.hasPath || len(p.path) == 0 {
		return true
	}

	remaining := p.grid.ManhattanDist(curr, dst)
	tolerance := 0
	switch {
	case remaining > parameter.NavRecomputeFarDist:
		tolerance = parameter.NavRecomputeFarTolerance
	case remaining > parameter.NavRecomputeNearDist:
		tolerance = parameter.NavRecomputeMidTolerance
	}

	return p.grid.ManhattanDist(p.dst, dst) > tolerance
}

// Reset drops the cached path and any running search
func (p *PathFinder) Reset() {
	p.path = nil
	p.hasPath = false
	p.search = nil
	p.computing = false
}
