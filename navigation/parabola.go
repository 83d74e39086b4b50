package navigation

import (
	"math"

	"github.com/lixenwraith/tilepath/parameter"
)

// bezierCurve is a cubic curve from (x0,y0) to (x1,y1) walked by parameter t
type bezierCurve struct {
	x0, y0, x1, y1 float64
	c0x, c0y       float64
	c1x, c1y       float64
	t              float64
}

// increment advances t and returns the new point, ok=false once t reaches 1
func (c *bezierCurve) increment(incr float64) (x, y float64, ok bool) {
	c.t += incr
	if c.t >= 1 {
		return 0, 0, false
	}
	u := 1 - c.t
	a := u * u * u
	b := 3 * u * u * c.t
	d := 3 * u * c.t * c.t
	e := c.t * c.t * c.t
	x = a*c.x0 + b*c.c0x + d*c.c1x + e*c.x1
	y = a*c.y0 + b*c.c0y + d*c.c1y + e*c.y1
	return x, y, true
}

// ParabolaPathFinder flies ballistic units along an arc that rises toward y=0
// Call ComputeControlPoints once per flight, then NextTile every tick
type ParabolaPathFinder struct {
	grid     *Grid
	curve    *bezierCurve
	distance float64
}

func NewParabolaPathFinder(grid *Grid) *ParabolaPathFinder {
	return &ParabolaPathFinder{grid: grid}
}

// ComputeControlPoints sets up the arc from orig to dst
// distanceBasedVertex=false gives a flat curve through the quarter points
func (p *ParabolaPathFinder) ComputeControlPoints(orig, dst TileRef, distanceBasedVertex bool) {
	ox, oy := float64(p.grid.X(orig)), float64(p.grid.Y(orig))
	dx, dy := float64(p.grid.X(dst)), float64(p.grid.Y(dst))

	p.distance = math.Hypot(dx-ox, dy-oy)

	lift := 0.0
	if distanceBasedVertex {
		lift = math.Max(p.distance/parameter.NavParabolaVertexDivisor, parameter.NavParabolaMinVertex)
	}

	p.curve = &bezierCurve{
		x0: ox, y0: oy, x1: dx, y1: dy,
		c0x: ox + (dx-ox)/4,
		c0y: math.Max(oy+(dy-oy)/4-lift, 0),
		c1x: ox + (dx-ox)*3/4,
		c1y: math.Max(oy+(dy-oy)*3/4-lift, 0),
	}
}

// NextTile advances speed tiles along the arc; arrived=true at the end or when no arc is set
func (p *ParabolaPathFinder) NextTile(speed float64) (next TileRef, arrived bool) {
	if p.curve == nil || p.distance == 0 {
		return 0, true
	}
	x, y, ok := p.curve.increment(speed / (p.distance * 2))
	if !ok {
		return 0, true
	}
	return p.grid.Ref(int(math.Floor(x)), int(math.Floor(y))), false
}
