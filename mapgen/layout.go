package mapgen

import (
	"math/rand"

	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
)

// Layout is a flat passage mask, true = traversable (water/road), false = blocked (land)
type Layout struct {
	Width, Height int
	Passage       []bool
}

// NewLayout returns a fully blocked layout
func NewLayout(width, height int) Layout {
	return Layout{
		Width:   width,
		Height:  height,
		Passage: make([]bool, width*height),
	}
}

// Open returns a layout with every tile traversable
func Open(width, height int) Layout {
	l := NewLayout(width, height)
	for i := range l.Passage {
		l.Passage[i] = true
	}
	return l
}

// FromRows parses an ASCII picture: '#' blocked, anything else traversable
// Rows shorter than the widest row are padded with blocked tiles
func FromRows(rows ...string) Layout {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	l := NewLayout(w, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			l.Passage[y*w+x] = r[x] != '#'
		}
	}
	return l
}

func (l Layout) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// IsPassage treats out-of-bounds as blocked
func (l Layout) IsPassage(x, y int) bool {
	return l.InBounds(x, y) && l.Passage[y*l.Width+x]
}

func (l Layout) set(x, y int, passage bool) {
	l.Passage[y*l.Width+x] = passage
}

// IsShore reports a passage with at least one blocked orthogonal neighbour
func (l Layout) IsShore(x, y int) bool {
	if !l.IsPassage(x, y) {
		return false
	}
	for _, d := range orthogonal {
		nx, ny := x+d.X, y+d.Y
		if l.InBounds(nx, ny) && !l.IsPassage(nx, ny) {
			return true
		}
	}
	return false
}

// RandomPassage picks a uniformly random passage tile, ok=false if there is none
func (l Layout) RandomPassage(rng *rand.Rand) (x, y int, ok bool) {
	count := 0
	for _, p := range l.Passage {
		if p {
			count++
		}
	}
	if count == 0 {
		return 0, 0, false
	}
	n := rng.Intn(count)
	for i, p := range l.Passage {
		if !p {
			continue
		}
		if n == 0 {
			return i % l.Width, i / l.Width, true
		}
		n--
	}
	return 0, 0, false
}

// Build converts the layout into a navigation grid
// Passages are navigable; shore passages cost NavShoreCost, open ones NavOpenCost.
// Blocked tiles keep NavOpenCost so they remain valid as search targets
func Build(l Layout) *navigation.Grid {
	costs := make([]float64, l.Width*l.Height)
	navigable := make([]navigation.TileRef, 0, len(l.Passage))

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			costs[idx] = parameter.NavOpenCost
			if !l.Passage[idx] {
				continue
			}
			if l.IsShore(x, y) {
				costs[idx] = parameter.NavShoreCost
			}
			navigable = append(navigable, navigation.TileRef(idx))
		}
	}

	return navigation.NewGrid(l.Width, l.Height, costs, navigable)
}
