package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/flow"
	"github.com/bensonglobal/meridian/pkg/hover"
)

const (
	gridStep    = 40
	rippleStart = 8.0
	rippleEnd   = 24.0
	panelWidth  = 192
)

// Network renders a network frame.
func Network(f diagram.NetworkFrame, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf, f.Width, f.Height)
	buf.WriteString(`  <defs>
    <linearGradient id="radar-grad" x1="0%" y1="0%" x2="100%" y2="0%">
      <stop offset="0%" stop-color="` + Gold + `" stop-opacity="0"/>
      <stop offset="100%" stop-color="` + Gold + `" stop-opacity="0.15"/>
    </linearGradient>
  </defs>
`)

	renderGrid(&buf, f.Width, f.Height)
	renderLanes(&buf, f.Lanes, f.Particles)
	renderHubs(&buf, r, f)
	renderSweep(&buf, r, f)
	if f.Panel.Active {
		renderPanel(&buf, f.Panel)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, width, height int) {
	buf.WriteString(`  <g class="grid-layer" stroke="#ffffff" stroke-width="0.5" stroke-opacity="0.03">` + "\n")
	for x := 0; x < width; x += gridStep {
		fmt.Fprintf(buf, `    <line x1="%d" y1="0" x2="%d" y2="%d"/>`+"\n", x, x, height)
	}
	for y := 0; y < height; y += gridStep {
		fmt.Fprintf(buf, `    <line x1="0" y1="%d" x2="%d" y2="%d"/>`+"\n", y, width, y)
	}
	buf.WriteString("  </g>\n")
}

func renderLanes(buf *bytes.Buffer, lanes []flow.Lane, particles []flow.Particle) {
	buf.WriteString(`  <g class="links-layer">` + "\n")
	for _, l := range lanes {
		fmt.Fprintf(buf, `    <path d="%s" data-source="%s" data-target="%s" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.15"/>`+"\n",
			l.Curve.Path(), esc(l.Source), esc(l.Target), Gold)
	}
	for _, p := range particles {
		if p.Opacity <= 0 {
			continue
		}
		fmt.Fprintf(buf, `    <circle r="1.5" fill="#ffffff" opacity="%.3f" transform="translate(%.2f,%.2f)"/>`+"\n",
			p.Opacity, p.Position.X, p.Position.Y)
	}
	buf.WriteString("  </g>\n")
}

func renderHubs(buf *bytes.Buffer, r renderer, f diagram.NetworkFrame) {
	ripple := rippleStart + (rippleEnd-rippleStart)*f.Ripple
	fade := 0.5 * (1 - f.Ripple)

	buf.WriteString(`  <g class="hubs-layer">` + "\n")
	for _, h := range f.Hubs {
		active := f.Hovered != nil && f.Hovered.ID == h.ID
		core, label, weight := MatteBlack, Muted, "normal"
		if active {
			core, label, weight = Gold, Gold, "bold"
		}
		fmt.Fprintf(buf, `    <g class="hub-node" data-hub="%s" transform="translate(%.2f,%.2f)">`+"\n", esc(h.ID), h.Point.X, h.Point.Y)
		fmt.Fprintf(buf, `      <circle r="%.2f" fill="none" stroke="%s" stroke-opacity="0.3" stroke-width="1">`, ripple, Gold)
		if r.animate {
			buf.WriteString(`<animate attributeName="r" from="8" to="24" dur="3s" repeatCount="indefinite"/>`)
		}
		buf.WriteString("</circle>\n")
		fmt.Fprintf(buf, `      <circle r="%.0f" fill="none" stroke="%s" stroke-opacity="0.3" stroke-width="1" opacity="%.3f">`, rippleStart, Gold, fade)
		if r.animate {
			buf.WriteString(`<animate attributeName="opacity" from="0.5" to="0" dur="3s" repeatCount="indefinite"/>`)
		}
		buf.WriteString("</circle>\n")
		fmt.Fprintf(buf, `      <circle class="core" r="4" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n", core, Gold)
		fmt.Fprintf(buf, `      <text x="12" y="4" font-family="sans-serif" font-size="10px" fill="%s" font-weight="%s" letter-spacing="1px" opacity="0.8">%s</text>`+"\n",
			label, weight, esc(strings.ToUpper(h.ID)))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderSweep(buf *bytes.Buffer, r renderer, f diagram.NetworkFrame) {
	radius := math.Max(float64(f.Width), float64(f.Height))
	// Wedge from 12 o'clock through 45 degrees clockwise.
	ex, ey := radius*math.Sin(math.Pi/4), -radius*math.Cos(math.Pi/4)
	fmt.Fprintf(buf, `  <g class="radar" transform="translate(%.2f,%.2f)" opacity="0.1">`+"\n", float64(f.Width)/2, float64(f.Height)/2)
	fmt.Fprintf(buf, `    <path d="M0,%.2f A%.2f,%.2f 0 0 1 %.2f,%.2f L0,0 Z" fill="url(#radar-grad)" transform="rotate(%.2f)">`,
		-radius, radius, radius, ex, ey, f.Sweep)
	if r.animate {
		fmt.Fprintf(buf, `<animateTransform attributeName="transform" type="rotate" from="%.2f 0 0" to="%.2f 0 0" dur="12s" repeatCount="indefinite"/>`,
			f.Sweep, f.Sweep+360)
	}
	buf.WriteString("</path>\n  </g>\n")
}

func renderPanel(buf *bytes.Buffer, p hover.Panel) {
	fmt.Fprintf(buf, `  <g class="tooltip" data-side="%s" transform="translate(%.2f,%.2f)">`+"\n", p.Side, p.Anchor.X, p.Anchor.Y)
	fmt.Fprintf(buf, `    <rect width="%d" height="112" rx="2" fill="#000000" fill-opacity="0.8" stroke="%s" stroke-opacity="0.3"/>`+"\n", panelWidth, Gold)
	fmt.Fprintf(buf, `    <text x="16" y="26" fill="#ffffff" font-family="serif" font-size="14px">%s</text>`+"\n", esc(p.Title))
	fmt.Fprintf(buf, `    <circle cx="%d" cy="21" r="3" fill="#22c55e"/>`+"\n", panelWidth-16)
	buf.WriteString(`    <text x="16" y="50" fill="#6b7280" font-family="sans-serif" font-size="9px" letter-spacing="2px">ROLE</text>` + "\n")
	fmt.Fprintf(buf, `    <text x="16" y="64" fill="%s" font-family="sans-serif" font-size="12px">%s</text>`+"\n", Gold, esc(p.Role))
	buf.WriteString(`    <text x="16" y="82" fill="#6b7280" font-family="sans-serif" font-size="9px" letter-spacing="2px">STATUS</text>` + "\n")
	fmt.Fprintf(buf, `    <text x="16" y="96" fill="#d1d5db" font-family="sans-serif" font-size="12px">%s</text>`+"\n", esc(p.Status))
	buf.WriteString("  </g>\n")
}
