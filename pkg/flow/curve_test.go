package flow

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/geo"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestCurveControlPerpendicular(t *testing.T) {
	tests := []struct {
		name       string
		start, end geo.Point
	}{
		{"horizontal", geo.Point{X: 0, Y: 0}, geo.Point{X: 100, Y: 0}},
		{"vertical", geo.Point{X: 10, Y: 10}, geo.Point{X: 10, Y: 210}},
		{"diagonal", geo.Point{X: 120, Y: 80}, geo.Point{X: 460, Y: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCurve(tt.start, tt.end)
			off := c.Offset()
			dx, dy := tt.end.X-tt.start.X, tt.end.Y-tt.start.Y
			if dot := off.X*dx + off.Y*dy; !approx(dot, 0, 1e-6) {
				t.Errorf("offset·chord = %v, want 0", dot)
			}
			chord := math.Hypot(dx, dy)
			if got := math.Hypot(off.X, off.Y); !approx(got, Bow*chord, 1e-9) {
				t.Errorf("|offset| = %v, want %v", got, Bow*chord)
			}
		})
	}
}

func TestCurveSwappedEndpointsMirror(t *testing.T) {
	a, b := geo.Point{X: 50, Y: 70}, geo.Point{X: 300, Y: 20}
	fwd := NewCurve(a, b).Offset()
	rev := NewCurve(b, a).Offset()
	if !approx(fwd.X, -rev.X, 1e-9) || !approx(fwd.Y, -rev.Y, 1e-9) {
		t.Errorf("offsets %v and %v are not mirrored", fwd, rev)
	}
}

func TestCurveHorizontalBowsDown(t *testing.T) {
	// Left-to-right chord on a y-down screen: (-dy, dx) points to +y.
	c := NewCurve(geo.Point{X: 0, Y: 0}, geo.Point{X: 100, Y: 0})
	if c.Control.X != 50 || c.Control.Y != 15 {
		t.Errorf("Control = %v, want (50, 15)", c.Control)
	}
}

func TestCurvePointAtEnds(t *testing.T) {
	c := NewCurve(geo.Point{X: 0, Y: 0}, geo.Point{X: 200, Y: 100})
	if p := c.PointAt(0); p != c.Start {
		t.Errorf("PointAt(0) = %v, want %v", p, c.Start)
	}
	if p := c.PointAt(1); p != c.End {
		t.Errorf("PointAt(1) = %v, want %v", p, c.End)
	}
	if p := c.PointAt(-3); p != c.Start {
		t.Errorf("PointAt(-3) = %v, want start", p)
	}
	if p := c.PointAt(7); p != c.End {
		t.Errorf("PointAt(7) = %v, want end", p)
	}
}

func TestCurvePointAtConstantSpeed(t *testing.T) {
	c := NewCurve(geo.Point{X: 0, Y: 0}, geo.Point{X: 400, Y: 0})
	const steps = 20
	seg := c.Length() / steps
	prev := c.PointAt(0)
	for i := 1; i <= steps; i++ {
		cur := c.PointAt(float64(i) / steps)
		d := math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		if !approx(d, seg, seg*0.02) {
			t.Errorf("step %d distance = %v, want ≈%v", i, d, seg)
		}
		prev = cur
	}
}

func TestCurveLengthExceedsChord(t *testing.T) {
	c := NewCurve(geo.Point{X: 0, Y: 0}, geo.Point{X: 300, Y: 0})
	if c.Length() <= 300 {
		t.Errorf("Length() = %v, want > chord 300", c.Length())
	}
}

func TestCurveDegenerate(t *testing.T) {
	p := geo.Point{X: 5, Y: 5}
	c := NewCurve(p, p)
	if c.Length() != 0 {
		t.Errorf("Length() = %v, want 0", c.Length())
	}
	if got := c.PointAt(0.5); got != p {
		t.Errorf("PointAt(0.5) = %v, want %v", got, p)
	}
}

func TestCurvePath(t *testing.T) {
	c := NewCurve(geo.Point{X: 0, Y: 0}, geo.Point{X: 100, Y: 0})
	want := "M0.00,0.00 Q50.00,15.00 100.00,0.00"
	if got := c.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestResolveSkipsUnknownHubs(t *testing.T) {
	points := map[string]geo.Point{
		"London": {X: 100, Y: 100},
		"Doha":   {X: 300, Y: 200},
	}
	conns := []Connection{
		{Source: "London", Target: "Doha"},
		{Source: "London", Target: "Atlantis"},
		{Source: "Nowhere", Target: "Doha"},
	}
	lanes := Resolve(conns, points, log.New(io.Discard))
	if len(lanes) != 1 {
		t.Fatalf("len(lanes) = %d, want 1", len(lanes))
	}
	if lanes[0].Source != "London" || lanes[0].Target != "Doha" {
		t.Errorf("lane = %+v, want London→Doha", lanes[0].Connection)
	}
}
