package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/flow"
	"github.com/bensonglobal/meridian/pkg/geo"
)

// pointsPerPixel converts screen pixels to Graphviz points at 96 dpi.
const pointsPerPixel = 0.75

// Options configures diagram generation.
type Options struct {
	// Detailed adds role and status lines to node labels.
	Detailed bool
	// Geographic pins nodes at their Mercator positions for a
	// Width x Height container.
	Geographic    bool
	Width, Height int
}

// ToDOT converts hubs and connections to Graphviz DOT. Connections naming
// an unknown hub are left out.
func ToDOT(hubs []geo.Hub, conns []flow.Connection, opts Options) string {
	var proj geo.Projection
	if opts.Geographic {
		proj = geo.Fit(opts.Width, opts.Height)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Geographic {
		buf.WriteString("  layout=neato;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
		buf.WriteString("  ranksep=0.6;\n")
		buf.WriteString("  nodesep=0.3;\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#0B0B0B\", color=\"#D4AF37\", fontcolor=\"#D4AF37\", fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#D4AF37\", penwidth=1.2, arrowsize=0.6];\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(hubs))
	for _, h := range hubs {
		known[h.ID] = true
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(h, opts.Detailed))}
		if opts.Geographic {
			p := proj.ProjectHub(h)
			// Graphviz y grows upward.
			attrs = append(attrs, fmt.Sprintf("pos=\"%.1f,%.1f!\"", p.X*pointsPerPixel, -p.Y*pointsPerPixel))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", h.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range conns {
		if !known[c.Source] || !known[c.Target] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.Source, c.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(h geo.Hub, detailed bool) string {
	label := strings.ToUpper(h.ID)
	if !detailed {
		return label
	}
	parts := []string{label}
	if h.Role != "" {
		parts = append(parts, h.Role)
	}
	if h.Status != "" {
		parts = append(parts, h.Status)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse DOT: empty graph")
	}
	defer g.Close()

	if strings.Contains(dot, "layout=neato") {
		gv.SetLayout(graphviz.NEATO)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
