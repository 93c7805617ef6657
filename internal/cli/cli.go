package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/pkg/buildinfo"
	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/config"
	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "meridian"

	// retryBackoff is the first wait between concierge attempts.
	retryBackoff = 500 * time.Millisecond
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Meridian animates the Benson Global network",
		Long:          `Meridian renders the Benson Global ecosystem and hub network as animated diagrams, serves them over HTTP, and fronts the AI concierge and social feed.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/meridian/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.hubsCommand())
	root.AddCommand(c.chatCommand())
	root.AddCommand(c.socialCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", c.ConfigPath, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// loadDataset returns the configured dataset file, or the built-in one.
// Validation warnings are logged.
func loadDataset(cfg config.Config, logger *log.Logger) (*dataset.Dataset, error) {
	if cfg.Dataset.Path == "" {
		return dataset.Default(), nil
	}
	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	warnings, err := ds.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("dataset", "path", cfg.Dataset.Path, "warning", w)
	}
	return ds, nil
}

// newCache opens the configured backend. noCache forces the null cache.
// The returned cache reports hits and misses to the observability hooks.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return cache.Instrument(rc), nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "open cache %s", dir)
		}
		return cache.Instrument(fc), nil
	}
}

// newConcierge returns a concierge backed by the generative language API when
// an API key is configured, and an offline one otherwise.
func newConcierge(ctx context.Context, cfg config.Config, logger *log.Logger) *concierge.Concierge {
	opts := []concierge.Option{
		concierge.WithLogger(logger),
		concierge.WithTimeout(cfg.Concierge.Timeout.D()),
		concierge.WithRetry(cfg.Concierge.Retries+1, retryBackoff),
	}
	if cfg.Concierge.APIKey == "" {
		logger.Debug("concierge offline: no API key")
		return concierge.New(nil, opts...)
	}
	gen, err := concierge.NewGenAIGenerator(ctx, cfg.Concierge.APIKey, cfg.Concierge.Model)
	if err != nil {
		logger.Warn("concierge offline", "err", err)
		return concierge.New(nil, opts...)
	}
	return concierge.New(gen, opts...)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// cache location (~/.cache/meridian/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
