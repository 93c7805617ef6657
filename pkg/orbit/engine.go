package orbit

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Engine owns the ring items and advances them every tick.
// It is not safe for concurrent use; callers drive it from one loop.
type Engine struct {
	rings []Ring
	items []Item
	ticks float64
}

// Layout places every ring item at its initial angle.
// Rings without items are skipped and logged; they never reach the
// angle-step division.
func Layout(specs []RingSpec, baseRadius float64, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{}
	for _, spec := range specs {
		n := len(spec.Items)
		if n < 1 {
			logger.Warn("skipping empty ring", "ring", spec.ID)
			continue
		}
		radius := spec.RadiusFactor * baseRadius
		e.rings = append(e.rings, Ring{
			ID:     spec.ID,
			Color:  spec.Color,
			Radius: radius,
			First:  len(e.items),
			Count:  n,
		})
		step := TwoPi / float64(n)
		for i, label := range spec.Items {
			e.items = append(e.items, Item{
				Label:           label,
				Ring:            spec.ID,
				Color:           spec.Color,
				RingRadius:      radius,
				AngularVelocity: spec.Velocity,
				Angle:           Wrap(float64(i) * step),
			})
		}
	}
	return e
}

// Advance moves every item by its ring velocity times ticks.
// Fractional ticks are allowed so time-based drivers can pass elapsed/interval.
func (e *Engine) Advance(ticks float64) {
	if ticks == 0 || math.IsNaN(ticks) || math.IsInf(ticks, 0) {
		return
	}
	e.ticks += ticks
	for i := range e.items {
		it := &e.items[i]
		it.Angle = Wrap(it.Angle + it.AngularVelocity*ticks)
	}
}

// Rotate turns every item of the named ring by delta radians, independent of
// its velocity. An empty ring ID rotates all rings.
func (e *Engine) Rotate(ringID string, delta float64) {
	for i := range e.items {
		if ringID == "" || e.items[i].Ring == ringID {
			e.items[i].Angle = Wrap(e.items[i].Angle + delta)
		}
	}
}

// Ticks returns the total ticks advanced since layout.
func (e *Engine) Ticks() float64 { return e.ticks }

// Rings returns the laid-out rings.
func (e *Engine) Rings() []Ring { return append([]Ring(nil), e.rings...) }

// Items returns a copy of all items.
func (e *Engine) Items() []Item { return append([]Item(nil), e.items...) }

// RingItems returns a copy of the items of one ring.
func (e *Engine) RingItems(ringID string) []Item {
	for _, r := range e.rings {
		if r.ID == ringID {
			return append([]Item(nil), e.items[r.First:r.First+r.Count]...)
		}
	}
	return nil
}

// Placed is an item resolved to screen coordinates.
type Placed struct {
	Item
	geo.Point
}

// Positions resolves every item around center.
func (e *Engine) Positions(center geo.Point) []Placed {
	out := make([]Placed, len(e.items))
	for i, it := range e.items {
		out[i] = Placed{
			Item: it,
			Point: geo.Point{
				X: center.X + math.Cos(it.Angle)*it.RingRadius,
				Y: center.Y + math.Sin(it.Angle)*it.RingRadius,
			},
		}
	}
	return out
}
