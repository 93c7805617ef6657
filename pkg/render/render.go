package render

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/observability"
	"github.com/bensonglobal/meridian/pkg/render/chart"
	"github.com/bensonglobal/meridian/pkg/render/nodelink"
	"github.com/bensonglobal/meridian/pkg/render/svg"
)

// Request describes one artifact.
type Request struct {
	Target string // orbital, network, nodelink or market
	Format string // empty selects the target's default

	Width, Height int
	At            time.Duration // snapshot time for orbital and network
	Seed          uint64        // particle seed for network
	Hover         string        // hub to highlight on network

	Animate    bool // SMIL animations in diagram SVG
	Detailed   bool // nodelink labels with role and status
	Geographic bool // nodelink nodes pinned to the map
}

// Normalize fills defaults and validates the request.
func (r Request) Normalize() (Request, error) {
	f, err := ParseFormat(r.Target, r.Format)
	if err != nil {
		return r, err
	}
	r.Format = f
	if r.Width == 0 {
		r.Width = 800
	}
	if r.Height == 0 {
		r.Height = 600
	}
	if err := errors.ValidateDimensions(r.Width, r.Height); err != nil {
		return r, err
	}
	return r, nil
}

// CacheKey identifies the artifact req produces from the dataset whose
// content hash is datasetHash. req should be normalized.
func (r Request) CacheKey(k cache.Keyer, datasetHash string) string {
	if r.Target == TargetMarket {
		return k.ChartKey(cache.ChartKeyOpts{Format: r.Format, Width: r.Width, Height: r.Height, Dataset: datasetHash})
	}
	return k.SnapshotKey(cache.SnapshotKeyOpts{
		Diagram: r.Target,
		Format:  r.Format,
		Width:   r.Width,
		Height:  r.Height,
		At:      r.At,
		Seed:    r.Seed,
		Hover:   r.Hover,
		Animate: r.Animate,
		Labels:  r.Detailed,
		Pinned:  r.Geographic,
		Dataset: datasetHash,
	})
}

// Render produces the artifact described by req from ds.
func Render(ctx context.Context, ds *dataset.Dataset, req Request, logger *log.Logger) (out []byte, err error) {
	req, err = req.Normalize()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()
	defer func() {
		observability.Render().OnRender(ctx, req.Target, req.Format, len(out), time.Since(start), err)
	}()

	opts := diagram.Options{Seed: req.Seed, Logger: logger}
	switch req.Target {
	case TargetOrbital:
		f, err := diagram.OrbitalAt(ds.Orbital(), opts, req.Width, req.Height, req.At)
		if err != nil {
			return nil, err
		}
		if req.Format == FormatJSON {
			return svg.JSON(f)
		}
		return svg.Orbital(f, svgOptions(req)...), nil

	case TargetNetwork:
		f, err := diagram.NetworkAt(ds.Network(), opts, req.Width, req.Height, req.At, req.Hover)
		if err != nil {
			return nil, err
		}
		if req.Format == FormatJSON {
			return svg.JSON(f)
		}
		return svg.Network(f, svgOptions(req)...), nil

	case TargetNodeLink:
		dot := nodelink.ToDOT(ds.Hubs, ds.Connections, nodelink.Options{
			Detailed:   req.Detailed,
			Geographic: req.Geographic,
			Width:      req.Width,
			Height:     req.Height,
		})
		switch req.Format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatPNG:
			return nodelink.RenderPNG(ctx, dot)
		default:
			return nodelink.RenderSVG(ctx, dot)
		}

	case TargetMarket:
		o := chart.Options{Width: req.Width, Height: req.Height}
		if req.Format == FormatPNG {
			return chart.PNG(ds.Market, o)
		}
		return chart.HTML(ds.Market, o)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown render target %q", req.Target)
}

func svgOptions(req Request) []svg.Option {
	opts := []svg.Option{svg.WithBackground(svg.MatteBlack)}
	if req.Animate {
		opts = append(opts, svg.WithAnimate())
	}
	return opts
}
