// Package config loads meridian settings from a TOML file with environment
// overrides. Every field has a default, so a missing file is not an error.
//
// Lookup order, later wins:
//
//  1. built-in defaults ([Default])
//  2. $XDG_CONFIG_HOME/meridian/config.toml (or the path given to [Load])
//  3. environment variables (see [Config.ApplyEnv])
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/errors"
)

const appName = "meridian"

// Config is the full application configuration.
type Config struct {
	Server    Server    `toml:"server"`
	Animation Animation `toml:"animation"`
	Concierge Concierge `toml:"concierge"`
	Social    Social    `toml:"social"`
	Cache     Cache     `toml:"cache"`
	Dataset   Dataset   `toml:"dataset"`
}

// Server configures the HTTP server.
type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Watch           bool     `toml:"watch"`
}

// Animation configures the diagram loop.
type Animation struct {
	FPS      int      `toml:"fps"`
	Debounce Duration `toml:"debounce"`
	Seed     uint64   `toml:"seed"`
}

// Concierge configures the chat assistant.
type Concierge struct {
	APIKey  string   `toml:"api_key"`
	Model   string   `toml:"model"`
	Timeout Duration `toml:"timeout"`
	Retries int      `toml:"retries"`
}

// Social configures the simulated feed.
type Social struct {
	Delay Duration `toml:"delay"`
	TTL   Duration `toml:"ttl"`
}

// Cache selects and configures the snapshot cache.
type Cache struct {
	Backend string   `toml:"backend"` // file, redis or none
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	Redis   Redis    `toml:"redis"`
}

// Redis holds connection settings for the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Dataset points at an optional YAML dataset file.
type Dataset struct {
	Path string `toml:"path"`
}

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Animation: Animation{
			FPS:      60,
			Debounce: Duration(150 * time.Millisecond),
		},
		Concierge: Concierge{
			Model:   concierge.DefaultModel,
			Timeout: Duration(30 * time.Second),
			Retries: 3,
		},
		Social: Social{
			Delay: Duration(600 * time.Millisecond),
			TTL:   Duration(time.Minute),
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     Duration(time.Hour),
			Redis:   Redis{Addr: "localhost:6379", Prefix: appName + ":"},
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the config at path over the defaults and applies environment
// overrides. An empty path uses [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		case err != nil:
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
			}
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from environment variables. The API key is
// taken from the first of MERIDIAN_GEMINI_API_KEY, GEMINI_API_KEY and
// API_KEY that is set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	for _, k := range []string{"MERIDIAN_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := getenv(k); v != "" {
			c.Concierge.APIKey = v
			break
		}
	}
	if v := getenv("MERIDIAN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("MERIDIAN_REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Backend = BackendRedis
	}
	if v := getenv("MERIDIAN_DATASET"); v != "" {
		c.Dataset.Path = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Animation.FPS <= 0 || c.Animation.FPS > 240 {
		return errors.New(errors.ErrCodeInvalidInput, "animation.fps must be in (0, 240], got %d", c.Animation.FPS)
	}
	if c.Animation.Debounce < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "animation.debounce must not be negative")
	}
	if c.Concierge.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concierge.retries must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	return nil
}

// FrameInterval is the loop period derived from FPS.
func (a Animation) FrameInterval() time.Duration {
	return time.Second / time.Duration(a.FPS)
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
