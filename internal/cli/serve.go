package cli

import (
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/internal/server"
	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/config"
	"github.com/bensonglobal/meridian/pkg/observability"
	"github.com/bensonglobal/meridian/pkg/social"
)

type serveOpts struct {
	addr    string
	dataset string
	watch   bool
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagrams, streams, chat and social over HTTP",
		Long: `Serve the diagrams over HTTP.

Snapshots (/api/orbital.svg, /api/network.json, /api/market.png, ...) are
rendered once per size and time and cached. Streams (/api/orbital/stream,
/api/network/stream) push live frames as server-sent events. The index page
at / embeds both streams.`,
		Example: `  # Listen on the configured address
  meridian serve

  # Serve a custom dataset and reload it when the file changes
  meridian serve --dataset hubs.yaml --watch --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset YAML or JSON file (overrides config)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the dataset file when it changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.watch {
		cfg.Server.Watch = true
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

	observability.InstallLogHooks(logger)
	defer observability.Reset()

	keyer := cache.NewDefaultKeyer()
	feed := social.NewFeed(social.WithDelay(cfg.Social.Delay.D()))

	srv := server.New(server.Options{
		Config:    cfg,
		Dataset:   ds,
		Cache:     store,
		Keyer:     keyer,
		Concierge: newConcierge(ctx, cfg, logger),
		Social:    social.NewCached(feed, store, keyer, cfg.Social.TTL.D(), logger),
		Scheduler: anim.NewScheduler(anim.WithInterval(cfg.Animation.FrameInterval()), anim.WithLogger(logger)),
		Logger:    logger,
	})

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
	printKeyValue("cache", string(cfg.Cache.Backend))
	printKeyValue("dataset", datasetLabel(cfg.Dataset.Path))
	printKeyValue("concierge", conciergeLabel(cfg))
	return srv.Run(ctx)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func datasetLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func conciergeLabel(cfg config.Config) string {
	if cfg.Concierge.APIKey == "" {
		return "offline"
	}
	return cfg.Concierge.Model
}
