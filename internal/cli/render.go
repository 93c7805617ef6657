package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/config"
	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/render"
)

const (
	defaultWidth  = 800 // default frame width
	defaultHeight = 600 // default frame height
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string        // output file (single format) or base path (several)
	formats    []string      // output formats, target default when empty
	dataset    string        // dataset file overriding config
	width      int           // frame width in pixels
	height     int           // frame height in pixels
	at         time.Duration // snapshot time for orbital and network
	seed       uint64        // particle seed for network
	hover      string        // hub highlighted on network
	animate    bool          // SMIL animations in diagram SVG
	detailed   bool          // role and status labels on nodelink
	geographic bool          // pin nodelink nodes to their map position
	noCache    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:       "render <orbital|network|nodelink|market>",
		Short:     "Render one frame of a diagram to a file",
		ValidArgs: render.Targets(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  # Orbital diagram two seconds in
  meridian render orbital --at 2s

  # Network with a tooltip, as SVG and JSON
  meridian render network --hover Doha -f svg,json -o hubs

  # Quarterly market chart as PNG
  meridian render market -f png --width 1200 --height 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated (default depends on target)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset YAML or JSON file (overrides config)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().DurationVar(&opts.at, "at", 0, "animation time of the snapshot")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "particle seed (default from config, else 1)")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "hub to highlight (network)")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "embed SVG animations (orbital, network)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show role and status (nodelink)")
	cmd.Flags().BoolVar(&opts.geographic, "geo", false, "pin nodes to map positions (nodelink)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseFormats parses the --format flag. Empty yields the target default.
func parseFormats(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(ctx context.Context, target string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.seed == 0 {
		opts.seed = max(cfg.Animation.Seed, 1)
	}

	reqs, err := renderRequests(target, opts)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cfg, logger)
	if err != nil {
		return err
	}
	store, err := newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", target))
	spinner.Start()
	results, err := renderAll(ctx, ds, store, cfg, reqs, logger)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render %s failed", target))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", target))

	for _, res := range results {
		path := outputPath(opts.output, target, res.req.Format, len(results))
		if err := os.WriteFile(path, res.data, 0o644); err != nil {
			return err
		}
		printFile(path)
		printRenderStats(res.req.Width, res.req.Height, len(res.data), res.cached)
	}
	if target != render.TargetMarket && len(results) == 1 && results[0].req.Format == render.FormatSVG {
		printNextStep("Watch it move", appName+" watch")
	}
	return nil
}

// renderRequests builds one normalized request per requested format.
func renderRequests(target string, opts renderOpts) ([]render.Request, error) {
	reqs := make([]render.Request, 0, len(opts.formats))
	seen := map[string]bool{}
	for _, f := range opts.formats {
		req, err := render.Request{
			Target:     target,
			Format:     f,
			Width:      opts.width,
			Height:     opts.height,
			At:         opts.at,
			Seed:       opts.seed,
			Hover:      opts.hover,
			Animate:    opts.animate,
			Detailed:   opts.detailed,
			Geographic: opts.geographic,
		}.Normalize()
		if err != nil {
			return nil, err
		}
		if seen[req.Format] {
			continue
		}
		seen[req.Format] = true
		reqs = append(reqs, req)
	}
	return reqs, nil
}

type renderResult struct {
	req    render.Request
	data   []byte
	cached bool
}

func renderAll(ctx context.Context, ds *dataset.Dataset, store cache.Cache, cfg config.Config, reqs []render.Request, logger *log.Logger) ([]renderResult, error) {
	raw, err := ds.Marshal()
	if err != nil {
		return nil, err
	}
	hash := cache.Hash(raw)
	keyer := cache.NewDefaultKeyer()

	results := make([]renderResult, 0, len(reqs))
	for _, req := range reqs {
		start := time.Now()
		data, hit, err := cache.GetOrCompute(ctx, store, req.CacheKey(keyer, hash), cfg.Cache.TTL.D(), func() ([]byte, error) {
			return render.Render(ctx, ds, req, logger)
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("rendered", "target", req.Target, "format", req.Format, "cached", hit, "took", time.Since(start).Round(time.Millisecond))
		results = append(results, renderResult{req: req, data: data, cached: hit})
	}
	return results, nil
}

// outputPath picks the file for one format. A single output uses the --output
// path as given; several share it as a base name.
func outputPath(output, target, format string, count int) string {
	if output == "" {
		return target + "." + format
	}
	if count == 1 {
		return output
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + "." + format
}
