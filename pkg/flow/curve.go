package flow

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Bow is the perpendicular control-point offset as a fraction of chord length.
const Bow = 0.15

// samples is the number of segments in the arc-length lookup table.
const samples = 64

// Curve is a quadratic bezier between two screen points.
type Curve struct {
	Start   geo.Point `json:"start"`
	Control geo.Point `json:"control"`
	End     geo.Point `json:"end"`

	lengths []float64 // cumulative arc length at each sample
}

// NewCurve builds the bowed curve from start to end.
func NewCurve(start, end geo.Point) Curve {
	p0, p2 := vec(start), vec(end)
	d := r2.Sub(p2, p0)
	mid := r2.Scale(0.5, r2.Add(p0, p2))
	ctrl := r2.Add(mid, r2.Scale(Bow, r2.Vec{X: -d.Y, Y: d.X}))

	c := Curve{Start: start, Control: point(ctrl), End: end}
	c.lengths = make([]float64, samples+1)
	prev := p0
	for i := 1; i <= samples; i++ {
		cur := c.eval(float64(i) / samples)
		c.lengths[i] = c.lengths[i-1] + r2.Norm(r2.Sub(cur, prev))
		prev = cur
	}
	return c
}

// Offset returns the control point's displacement from the chord midpoint.
func (c Curve) Offset() geo.Point {
	mid := r2.Scale(0.5, r2.Add(vec(c.Start), vec(c.End)))
	return point(r2.Sub(vec(c.Control), mid))
}

// Length is the approximate arc length.
func (c Curve) Length() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return c.lengths[len(c.lengths)-1]
}

// Path returns the SVG path data for the curve.
func (c Curve) Path() string {
	return fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f",
		c.Start.X, c.Start.Y, c.Control.X, c.Control.Y, c.End.X, c.End.Y)
}

// PointAt returns the point at fraction t of the arc length, clamped to [0, 1].
func (c Curve) PointAt(t float64) geo.Point {
	switch {
	case t <= 0 || math.IsNaN(t):
		return c.Start
	case t >= 1:
		return c.End
	}
	total := c.Length()
	if total == 0 {
		return c.Start
	}
	target := t * total
	i := sort.SearchFloat64s(c.lengths, target)
	if i == 0 {
		return c.Start
	}
	lo, hi := c.lengths[i-1], c.lengths[i]
	frac := 0.0
	if hi > lo {
		frac = (target - lo) / (hi - lo)
	}
	u := (float64(i-1) + frac) / samples
	return point(c.eval(u))
}

// eval evaluates the bezier at parameter u.
func (c Curve) eval(u float64) r2.Vec {
	a := (1 - u) * (1 - u)
	b := 2 * (1 - u) * u
	d := u * u
	return r2.Add(r2.Add(r2.Scale(a, vec(c.Start)), r2.Scale(b, vec(c.Control))), r2.Scale(d, vec(c.End)))
}

func vec(p geo.Point) r2.Vec   { return r2.Vec{X: p.X, Y: p.Y} }
func point(v r2.Vec) geo.Point { return geo.Point{X: v.X, Y: v.Y} }
