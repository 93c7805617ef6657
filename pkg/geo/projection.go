package geo

import "math"

const (
	// DefaultCenterLng and DefaultCenterLat put the Atlantic, Europe and Africa
	// in the middle of the frame.
	DefaultCenterLng = 10.0
	DefaultCenterLat = 20.0

	// DefaultScaleDivisor derives the projection scale from container width.
	DefaultScaleDivisor = 2.8

	// maxLat is where Mercator is conventionally clipped.
	maxLat = 85.05112878
)

// Projection is a Mercator projection with a fixed center, scale and translate.
type Projection struct {
	CenterLng, CenterLat float64
	Scale                float64
	TranslateX           float64
	TranslateY           float64
}

// Option customizes a projection built by [Fit].
type Option func(*Projection, float64)

// WithCenter overrides the geographic center of the frame.
func WithCenter(lng, lat float64) Option {
	return func(p *Projection, _ float64) { p.CenterLng, p.CenterLat = lng, lat }
}

// WithScaleDivisor sets scale = width / d. Non-positive values are ignored.
func WithScaleDivisor(d float64) Option {
	return func(p *Projection, width float64) {
		if d > 0 {
			p.Scale = width / d
		}
	}
}

// Fit builds the projection for a container of the given pixel size.
func Fit(width, height int, opts ...Option) Projection {
	w, h := float64(width), float64(height)
	p := Projection{
		CenterLng:  DefaultCenterLng,
		CenterLat:  DefaultCenterLat,
		Scale:      w / DefaultScaleDivisor,
		TranslateX: w / 2,
		TranslateY: h / 2,
	}
	for _, opt := range opts {
		opt(&p, w)
	}
	return p
}

// Project maps a latitude/longitude pair to screen coordinates.
func (p Projection) Project(lat, lng float64) Point {
	x := p.Scale * (radians(lng) - radians(p.CenterLng))
	y := p.Scale * (mercatorY(lat) - mercatorY(p.CenterLat))
	return Point{X: p.TranslateX + x, Y: p.TranslateY - y}
}

// ProjectHub projects a hub's coordinates.
func (p Projection) ProjectHub(h Hub) Point {
	return p.Project(h.Lat, h.Lng)
}

// ProjectAll projects every hub, keyed by hub ID.
func (p Projection) ProjectAll(hubs []Hub) map[string]Point {
	out := make(map[string]Point, len(hubs))
	for _, h := range hubs {
		out[h.ID] = p.ProjectHub(h)
	}
	return out
}

func mercatorY(lat float64) float64 {
	lat = max(-maxLat, min(maxLat, lat))
	return math.Log(math.Tan(math.Pi/4 + radians(lat)/2))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
