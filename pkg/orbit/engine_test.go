package orbit

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bensonglobal/meridian/pkg/geo"
)

var quiet = log.New(io.Discard)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLayoutEvenSpacing(t *testing.T) {
	e := Layout([]RingSpec{{ID: "r", Items: []string{"a", "b", "c"}, RadiusFactor: 0.5}}, 200, quiet)
	items := e.Items()
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	want := []float64{0, Radians(120), Radians(240)}
	for i, it := range items {
		if !near(it.Angle, want[i]) {
			t.Errorf("items[%d].Angle = %v, want %v", i, it.Angle, want[i])
		}
		if it.RingRadius != 100 {
			t.Errorf("items[%d].RingRadius = %v, want 100", i, it.RingRadius)
		}
	}
}

func TestRotateThreeItems(t *testing.T) {
	e := Layout([]RingSpec{{ID: "r", Items: []string{"a", "b", "c"}, RadiusFactor: 1}}, 100, quiet)
	e.Rotate("r", Radians(30))

	got := make([]float64, 0, 3)
	for _, it := range e.Items() {
		got = append(got, math.Round(Degrees(it.Angle)*1e6)/1e6)
	}
	want := []float64{30, 150, 270}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("angles mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvanceFollowsVelocity(t *testing.T) {
	specs := DefaultRings()
	e := Layout(specs, 300, quiet)
	initial := e.Items()

	e.Advance(1000)
	for i, it := range e.Items() {
		want := Wrap(initial[i].Angle + it.AngularVelocity*1000)
		if !near(it.Angle, want) {
			t.Errorf("%s angle = %v, want %v", it.Label, it.Angle, want)
		}
		if it.Angle < 0 || it.Angle >= TwoPi {
			t.Errorf("%s angle %v out of [0, 2π)", it.Label, it.Angle)
		}
	}
	if e.Ticks() != 1000 {
		t.Errorf("Ticks() = %v, want 1000", e.Ticks())
	}
}

func TestAdvanceNegativeVelocityWraps(t *testing.T) {
	e := Layout([]RingSpec{{ID: "r", Items: []string{"a"}, RadiusFactor: 1, Velocity: -0.1}}, 10, quiet)
	e.Advance(1)
	got := e.Items()[0].Angle
	if !near(got, TwoPi-0.1) {
		t.Errorf("Angle = %v, want %v", got, TwoPi-0.1)
	}
}

func TestAdvanceIgnoresNonFinite(t *testing.T) {
	e := Layout(DefaultRings(), 100, quiet)
	before := e.Items()
	e.Advance(math.NaN())
	e.Advance(math.Inf(1))
	if diff := cmp.Diff(before, e.Items()); diff != "" {
		t.Errorf("items changed (-before +after):\n%s", diff)
	}
}

func TestLayoutSkipsEmptyRing(t *testing.T) {
	specs := []RingSpec{
		{ID: "empty", RadiusFactor: 1},
		{ID: "one", Items: []string{"x"}, RadiusFactor: 1},
	}
	e := Layout(specs, 50, quiet)
	rings := e.Rings()
	if len(rings) != 1 || rings[0].ID != "one" {
		t.Fatalf("Rings() = %+v, want only ring %q", rings, "one")
	}
	if e.RingItems("empty") != nil {
		t.Error("RingItems(empty) should be nil")
	}
}

func TestRotateSingleRing(t *testing.T) {
	e := Layout(DefaultRings(), 100, quiet)
	before := e.RingItems("services")
	e.Rotate("partners", 1)
	after := e.RingItems("services")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("services moved when rotating partners:\n%s", diff)
	}
}

func TestPositions(t *testing.T) {
	e := Layout([]RingSpec{{ID: "r", Items: []string{"a", "b", "c", "d"}, RadiusFactor: 1}}, 10, quiet)
	got := e.Positions(geo.Point{X: 50, Y: 50})
	want := []geo.Point{{X: 60, Y: 50}, {X: 50, Y: 60}, {X: 40, Y: 50}, {X: 50, Y: 40}}
	for i, p := range got {
		if diff := cmp.Diff(want[i], p.Point, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("Positions[%d] (-want +got):\n%s", i, diff)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{TwoPi, 0},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-1e-18, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); !near(got, tt.want) {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSizeFor(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		baseRadius float64
		glow, font float64
	}{
		{"desktop", 800, 600, 255, 20, 14.666666666666666},
		{"mobile", 400, 400, 180, 10, 9},
		{"tiny", 100, 100, 45, 10, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SizeFor(tt.w, tt.h)
			if !near(s.BaseRadius, tt.baseRadius) {
				t.Errorf("BaseRadius = %v, want %v", s.BaseRadius, tt.baseRadius)
			}
			if !near(s.GlowRadius, tt.glow) {
				t.Errorf("GlowRadius = %v, want %v", s.GlowRadius, tt.glow)
			}
			if !near(s.FontSize, tt.font) {
				t.Errorf("FontSize = %v, want %v", s.FontSize, tt.font)
			}
			if s.CoreRadius < 3 || s.LabelOffset < 20 {
				t.Errorf("sizes below minimum: %+v", s)
			}
		})
	}
}
