package svg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"time"
)

// Palette.
const (
	Gold       = "#D4AF37"
	MatteBlack = "#0B0B0B"
	Muted      = "#666"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	background string
	animate    bool
}

// WithBackground fills the canvas with color. The default is transparent.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithAnimate adds SMIL animations for decorative elements.
func WithAnimate() Option { return func(r *renderer) { r.animate = true } }

func newRenderer(opts ...Option) renderer {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) open(buf *bytes.Buffer, width, height int) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	if r.background != "" {
		fmt.Fprintf(buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", esc(r.background))
	}
}

// JSON encodes a frame for clients that draw it themselves.
func JSON(frame any) ([]byte, error) {
	return json.MarshalIndent(frame, "", "  ")
}

func esc(s string) string { return html.EscapeString(s) }

// pulse maps the phase of elapsed within period to 0→1→0.
func pulse(elapsed, period time.Duration) float64 {
	p := math.Mod(float64(elapsed), float64(period)) / float64(period)
	return 1 - math.Abs(2*p-1)
}
