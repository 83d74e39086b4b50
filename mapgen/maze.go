package mapgen

import (
	"math/rand"
	"time"
)

type Point struct {
	X, Y int
}

var orthogonal = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// MazeConfig controls maze generation
type MazeConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, single route) to 1.0 (no dead ends, many routes)
	Braiding float64

	// Channels widens every corridor by opening the wall cells east and south of each room,
	// producing 2-tile-wide passages that survive downsampling
	Channels bool

	Seed int64 // 0 = time-based
}

// Maze generates a braided maze; rooms sit on odd coordinates, borders stay blocked
// Dimensions below 3 are raised to 3, even dimensions keep their last row/column blocked
func Maze(cfg MazeConfig) Layout {
	w := max(cfg.Width, 3)
	h := max(cfg.Height, 3)
	l := NewLayout(w, h)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	carve(l, Point{1, 1}, rng)
	if cfg.Braiding > 0 {
		braid(l, cfg.Braiding, rng)
	}
	if cfg.Channels {
		widen(l)
	}
	return l
}

// carve runs an iterative recursive-backtracker from start, jumping two cells at a time
func carve(l Layout, start Point, rng *rand.Rand) {
	stack := []Point{start}
	l.set(start.X, start.Y, true)

	candidates := make([]Point, 0, 4)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range orthogonal {
			nx, ny := cur.X+2*d.X, cur.Y+2*d.Y
			// Leave a 1-cell blocked border
			if nx > 0 && nx < l.Width-1 && ny > 0 && ny < l.Height-1 && !l.IsPassage(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		l.set(cur.X+d.X, cur.Y+d.Y, true)
		next := Point{cur.X + 2*d.X, cur.Y + 2*d.Y}
		l.set(next.X, next.Y, true)
		stack = append(stack, next)
	}
}

// braid knocks a wall out of dead-end rooms with the given probability, adding cycles
func braid(l Layout, probability float64, rng *rand.Rand) {
	candidates := make([]Point, 0, 4)
	for y := 1; y < l.Height-1; y += 2 {
		for x := 1; x < l.Width-1; x += 2 {
			if !l.IsPassage(x, y) {
				continue
			}

			exits := 0
			for _, d := range orthogonal {
				if l.IsPassage(x+d.X, y+d.Y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, d := range orthogonal {
				wx, wy := x+d.X, y+d.Y
				nx, ny := x+2*d.X, y+2*d.Y
				if l.IsPassage(nx, ny) && !l.IsPassage(wx, wy) && !opensPlaza(l, wx, wy) {
					candidates = append(candidates, Point{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				l.set(c.X, c.Y, true)
			}
		}
	}
}

// opensPlaza reports whether opening (x,y) would complete a 2×2 open square
func opensPlaza(l Layout, x, y int) bool {
	quads := [4][3]Point{
		{{-1, -1}, {0, -1}, {-1, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, 1}},
		{{1, 0}, {0, 1}, {1, 1}},
	}
	for _, q := range quads {
		if l.IsPassage(x+q[0].X, y+q[0].Y) && l.IsPassage(x+q[1].X, y+q[1].Y) && l.IsPassage(x+q[2].X, y+q[2].Y) {
			return true
		}
	}
	return false
}

// widen thickens corridors so a 2× downsample keeps them connected
func widen(l Layout) {
	snapshot := append([]bool(nil), l.Passage...)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !snapshot[y*l.Width+x] {
				continue
			}
			if x+1 < l.Width-1 {
				l.set(x+1, y, true)
			}
			if y+1 < l.Height-1 {
				l.set(x, y+1, true)
			}
		}
	}
}
