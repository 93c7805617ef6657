package orbit

import "math"

// TwoPi is one full revolution in radians.
const TwoPi = 2 * math.Pi

// RingSpec configures one ring of the diagram.
type RingSpec struct {
	ID           string   `json:"id" yaml:"id"`
	Items        []string `json:"items" yaml:"items"`
	RadiusFactor float64  `json:"radius_factor" yaml:"radius_factor"`
	Velocity     float64  `json:"velocity" yaml:"velocity"` // radians per tick, negative is counter-clockwise
	Color        string   `json:"color" yaml:"color"`
}

// Item is a single labeled node riding on a ring.
type Item struct {
	Label           string  `json:"label"`
	Ring            string  `json:"ring"`
	Color           string  `json:"color"`
	RingRadius      float64 `json:"ring_radius"`
	AngularVelocity float64 `json:"angular_velocity"`
	Angle           float64 `json:"angle"`
}

// Ring is a laid-out ring: its radius and the index range of its items.
type Ring struct {
	ID     string  `json:"id"`
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
	First  int     `json:"first"`
	Count  int     `json:"count"`
}

// DefaultRings returns the three-ring ecosystem configuration:
// stakeholders on the outside, services in the middle, partners innermost.
func DefaultRings() []RingSpec {
	return []RingSpec{
		{
			ID:           "stakeholders",
			Items:        []string{"HNW Families", "Family Offices", "Institutions", "Athletes", "Governments"},
			RadiusFactor: 1.0,
			Velocity:     0.0005,
			Color:        "#666",
		},
		{
			ID:           "services",
			Items:        []string{"Public Markets", "Private Markets", "Climate/Infra", "Sports/Health", "Real Estate", "Regenerative"},
			RadiusFactor: 0.7,
			Velocity:     -0.0008,
			Color:        "#D4AF37",
		},
		{
			ID:           "partners",
			Items:        []string{"Victory Hill", "NetZero Nexus", "ITS", "Falcon", "TG4"},
			RadiusFactor: 0.4,
			Velocity:     0.001,
			Color:        "#ffffff",
		},
	}
}

// Wrap normalizes an angle into [0, 2π).
func Wrap(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative value can round back up to 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
