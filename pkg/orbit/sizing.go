package orbit

import "math"

const (
	// baseSize is the container size the default marker sizes were tuned for.
	baseSize = 600.0

	// mobileWidth is the width under which rings take more of the container.
	mobileWidth = 600
)

// Sizing holds the dimension-dependent sizes of one layout pass.
type Sizing struct {
	Width, Height int
	CenterX       float64
	CenterY       float64
	BaseRadius    float64
	Scale         float64
	GlowRadius    float64
	CoreRadius    float64
	FontSize      float64
	LabelOffset   float64
	HubGlow       float64
	HubRing       float64
	HubFontSize   float64
}

// SizeFor computes marker and font sizes for a container, clamped so small
// containers stay readable.
func SizeFor(width, height int) Sizing {
	w, h := float64(width), float64(height)
	fill := 0.85
	if width < mobileWidth {
		fill = 0.9
	}
	s := math.Max(w, h) / baseSize
	return Sizing{
		Width:       width,
		Height:      height,
		CenterX:     w / 2,
		CenterY:     h / 2,
		BaseRadius:  math.Min(w, h) / 2 * fill,
		Scale:       s,
		GlowRadius:  math.Max(10, 15*s),
		CoreRadius:  math.Max(3, 4*s),
		FontSize:    math.Max(9, 11*s),
		LabelOffset: math.Max(20, 25*s),
		HubGlow:     math.Max(30, 40*s),
		HubRing:     math.Max(35, 45*s),
		HubFontSize: math.Max(14, 16*s),
	}
}
