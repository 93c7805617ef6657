package svg

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bensonglobal/meridian/pkg/diagram"
)

const glowPeriod = 3 * time.Second

// Orbital renders an orbital frame.
func Orbital(f diagram.OrbitalFrame, opts ...Option) []byte {
	r := newRenderer(opts...)
	s := f.Sizing

	var buf bytes.Buffer
	r.open(&buf, f.Width, f.Height)
	buf.WriteString(`  <defs>
    <radialGradient id="centerGradient">
      <stop offset="0%" stop-color="` + Gold + `" stop-opacity="0.3"/>
      <stop offset="100%" stop-color="` + MatteBlack + `" stop-opacity="0"/>
    </radialGradient>
  </defs>
`)

	buf.WriteString(`  <g class="tracks">` + "\n")
	for _, ring := range f.Rings {
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.15" stroke-dasharray="2 4"/>`+"\n",
			f.Center.X, f.Center.Y, ring.Radius, esc(ring.Color))
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="0.5" stroke-opacity="0.05"/>`+"\n",
			f.Center.X, f.Center.Y, ring.Radius-5, esc(ring.Color))
	}
	buf.WriteString("  </g>\n")

	glow := 0.15 * pulse(f.Elapsed, glowPeriod)
	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, it := range f.Items {
		color := esc(it.Color)
		fmt.Fprintf(&buf, `    <g class="node" data-ring="%s" transform="translate(%.2f,%.2f)">`+"\n", esc(it.Ring), it.X, it.Y)
		fmt.Fprintf(&buf, `      <circle r="%.2f" fill="%s" opacity="%.3f">`, s.GlowRadius, color, glow)
		if r.animate {
			buf.WriteString(`<animate attributeName="opacity" values="0;0.15;0" dur="3s" repeatCount="indefinite"/>`)
		}
		buf.WriteString("</circle>\n")
		fmt.Fprintf(&buf, `      <circle r="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n", s.CoreRadius, MatteBlack, color)
		fmt.Fprintf(&buf, `      <text text-anchor="middle" dy="%.2f" fill="%s" font-size="%.2fpx" font-family="sans-serif" font-weight="600" letter-spacing="0.5px">%s</text>`+"\n",
			s.LabelOffset, color, s.FontSize, esc(it.Label))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="center" transform="translate(%.2f,%.2f)">`+"\n", f.Center.X, f.Center.Y)
	fmt.Fprintf(&buf, `    <circle r="%.2f" fill="url(#centerGradient)"/>`+"\n", s.HubGlow)
	fmt.Fprintf(&buf, `    <circle r="%.2f" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="1 3" transform="rotate(%.2f)">`, s.HubRing, Gold, f.Spin)
	if r.animate {
		fmt.Fprintf(&buf, `<animateTransform attributeName="transform" type="rotate" from="%.2f 0 0" to="%.2f 0 0" dur="20s" repeatCount="indefinite"/>`,
			f.Spin, f.Spin+360)
	}
	buf.WriteString("</circle>\n")
	fmt.Fprintf(&buf, `    <text text-anchor="middle" dy="0.3em" fill="%s" font-family="serif" font-weight="bold" font-size="%.2fpx" letter-spacing="1px">%s</text>`+"\n",
		Gold, s.HubFontSize, esc(f.Label))
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
