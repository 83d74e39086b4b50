package navigation

import (
	"github.com/lixenwraith/tilepath/parameter"
)

// frontier is one direction of the search
type frontier struct {
	open     openSet
	gScore   map[TileRef]float64
	cameFrom map[TileRef]TileRef
	target   TileRef
}

func newFrontier(target TileRef) frontier {
	return frontier{
		open:     make(openSet, 0, 64),
		gScore:   make(map[TileRef]float64),
		cameFrom: make(map[TileRef]TileRef),
		target:   target,
	}
}

// next pops the best live entry, discarding stale duplicates
func (f *frontier) next() (TileRef, bool) {
	for !f.open.empty() {
		e := f.open.pop()
		if best, ok := f.gScore[e.ref]; ok && e.g > best {
			continue // Superseded by a cheaper push
		}
		return e.ref, true
	}
	return 0, false
}

// SearchStats counts work done by a search, for host-side metrics
type SearchStats struct {
	AdvanceCalls int
	Iterations   int
	Expanded     int
}

// BidirectionalSearch is a resumable weighted A* running from the sources and the destination
// until the two frontiers meet. Drive it with Advance until it stops returning Pending.
// Not safe for concurrent use; the grid may be shared.
type BidirectionalSearch struct {
	grid *Grid

	sources       []TileRef
	closestSource TileRef
	destination   TileRef

	fwd frontier // From sources toward destination
	bwd frontier // From destination toward closestSource

	iterations int
	callsLeft  int

	meeting    TileRef
	hasMeeting bool
	completed  bool
	exhausted  bool

	stats SearchStats
	nbuf  []TileRef
}

// NewBidirectionalSearch seeds both frontiers; sources must be non-empty
func NewBidirectionalSearch(sources []TileRef, destination TileRef, iterationsPerAdvance, maxAdvanceCalls int, grid *Grid) *BidirectionalSearch {
	s := &BidirectionalSearch{
		grid:        grid,
		sources:     append([]TileRef(nil), sources...),
		destination: destination,
		iterations:  iterationsPerAdvance,
		callsLeft:   maxAdvanceCalls,
		nbuf:        make([]TileRef, 0, 4),
	}

	// Closest source by heuristic, first wins ties
	s.closestSource = sources[0]
	best := s.heuristic(sources[0], destination)
	for _, src := range sources[1:] {
		if h := s.heuristic(src, destination); h < best {
			best = h
			s.closestSource = src
		}
	}

	s.fwd = newFrontier(destination)
	for _, src := range s.sources {
		s.fwd.gScore[src] = 0
		s.fwd.open.push(openEntry{ref: src, f: s.heuristic(src, destination)})
	}

	s.bwd = newFrontier(s.closestSource)
	s.bwd.gScore[destination] = 0
	s.bwd.open.push(openEntry{ref: destination, f: s.heuristic(destination, s.closestSource)})

	return s
}

// Advance runs one bounded slice of work
// Returns Completed once the frontiers meet (and on every call after), Pending while budget
// remains, PathNotFound once an open set empties or the call budget is spent
func (s *BidirectionalSearch) Advance() Result {
	if s.completed {
		return Completed
	}
	if s.exhausted {
		return PathNotFound
	}

	s.callsLeft--
	s.stats.AdvanceCalls++

	for i := 0; i < s.iterations; i++ {
		s.stats.Iterations++

		if r := s.step(&s.fwd, &s.bwd); r != Pending {
			return r
		}
		if r := s.step(&s.bwd, &s.fwd); r != Pending {
			return r
		}
	}

	if s.callsLeft <= 0 {
		s.exhausted = true
		return PathNotFound
	}
	return Pending
}

// step pops one node from self, checks it against other, then expands it
func (s *BidirectionalSearch) step(self, other *frontier) Result {
	current, ok := self.next()
	if !ok {
		s.exhausted = true
		return PathNotFound
	}
	if _, met := other.gScore[current]; met {
		s.meeting = current
		s.hasMeeting = true
		s.completed = true
		return Completed
	}
	s.expand(self, current)
	return Pending
}

func (s *BidirectionalSearch) expand(f *frontier, current TileRef) {
	s.stats.Expanded++
	g := f.gScore[current]

	s.nbuf = s.grid.NeighborsInto(current, s.nbuf)
	for _, n := range s.nbuf {
		if n != f.target && !s.grid.IsNavigable(n) {
			continue
		}
		tentative := g + s.grid.Cost(n)
		if prev, ok := f.gScore[n]; ok && tentative >= prev {
			continue
		}
		f.gScore[n] = tentative
		f.cameFrom[n] = current
		f.open.push(openEntry{ref: n, f: tentative + s.heuristic(n, f.target), g: tentative})
	}
}

// heuristic is the inflated Manhattan distance
func (s *BidirectionalSearch) heuristic(a, b TileRef) float64 {
	return parameter.NavHeuristicWeight * float64(s.grid.ManhattanDist(a, b))
}

// ReconstructPath returns source…meeting…destination, or nil before completion
func (s *BidirectionalSearch) ReconstructPath() []TileRef {
	if !s.hasMeeting {
		return nil
	}

	// Forward half, collected meeting→source then reversed
	path := []TileRef{s.meeting}
	for cur := s.meeting; ; {
		prev, ok := s.fwd.cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	// Backward half, meeting→destination
	for cur := s.meeting; ; {
		next, ok := s.bwd.cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, next)
		cur = next
	}

	return path
}

// Completed reports whether the frontiers have met
func (s *BidirectionalSearch) Completed() bool { return s.completed }

// MeetingPoint returns the tile where the frontiers met
func (s *BidirectionalSearch) MeetingPoint() (TileRef, bool) {
	return s.meeting, s.hasMeeting
}

// ClosestSource returns the source the backward frontier aims at
func (s *BidirectionalSearch) ClosestSource() TileRef { return s.closestSource }

func (s *BidirectionalSearch) Stats() SearchStats { return s.stats }

// Visited calls fn for every tile either frontier has assigned a cost to
// forward is true for tiles reached from the sources
func (s *BidirectionalSearch) Visited(fn func(r TileRef, forward bool)) {
	for r := range s.fwd.gScore {
		fn(r, true)
	}
	for r := range s.bwd.gScore {
		fn(r, false)
	}
}
