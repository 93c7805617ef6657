package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bensonglobal/meridian/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("MERIDIAN_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("MERIDIAN_ADDR", "")
	t.Setenv("MERIDIAN_REDIS_ADDR", "")
	t.Setenv("MERIDIAN_DATASET", "")

	path := writeConfig(t, `
[server]
addr = ":9000"

[animation]
fps = 30
debounce = "250ms"

[social]
delay = "0s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Server.Addr = ":9000"
	want.Animation.FPS = 30
	want.Animation.Debounce = Duration(250 * time.Millisecond)
	want.Social.Delay = 0
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Animation.FrameInterval(); got != time.Second/30 {
		t.Errorf("FrameInterval() = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml"), errors.ErrCodeNotFound},
		{"bad toml", writeConfig(t, "[server\naddr="), errors.ErrCodeInvalidFormat},
		{"bad duration", writeConfig(t, "[animation]\ndebounce = \"soon\""), errors.ErrCodeInvalidFormat},
		{"bad fps", writeConfig(t, "[animation]\nfps = 0"), errors.ErrCodeInvalidInput},
		{"bad backend", writeConfig(t, "[cache]\nbackend = \"memcached\""), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") err = %v", err)
	}
	if cfg.Server.Addr == "" {
		t.Error("defaults not applied")
	}
}

func TestPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "meridian", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c Config)
	}{
		{
			name: "api key precedence",
			env:  map[string]string{"API_KEY": "c", "GEMINI_API_KEY": "b", "MERIDIAN_GEMINI_API_KEY": "a"},
			check: func(t *testing.T, c Config) {
				if c.Concierge.APIKey != "a" {
					t.Errorf("APIKey = %q, want a", c.Concierge.APIKey)
				}
			},
		},
		{
			name: "generic api key",
			env:  map[string]string{"API_KEY": "c"},
			check: func(t *testing.T, c Config) {
				if c.Concierge.APIKey != "c" {
					t.Errorf("APIKey = %q, want c", c.Concierge.APIKey)
				}
			},
		},
		{
			name: "redis addr selects backend",
			env:  map[string]string{"MERIDIAN_REDIS_ADDR": "cache:6379"},
			check: func(t *testing.T, c Config) {
				if c.Cache.Backend != BackendRedis || c.Cache.Redis.Addr != "cache:6379" {
					t.Errorf("Cache = %+v", c.Cache)
				}
			},
		},
		{
			name: "addr",
			env:  map[string]string{"MERIDIAN_ADDR": "127.0.0.1:1"},
			check: func(t *testing.T, c Config) {
				if c.Server.Addr != "127.0.0.1:1" {
					t.Errorf("Addr = %q", c.Server.Addr)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.ApplyEnv(func(k string) string { return tt.env[k] })
			tt.check(t, c)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, string(data))
	t.Setenv("MERIDIAN_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("MERIDIAN_ADDR", "")
	t.Setenv("MERIDIAN_REDIS_ADDR", "")
	t.Setenv("MERIDIAN_DATASET", "")
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MERIDIAN_GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("MERIDIAN_ADDR", "")
	t.Setenv("MERIDIAN_REDIS_ADDR", "")
	t.Setenv("MERIDIAN_DATASET", "")

	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("example config drifted from defaults (-want +got):\n%s", diff)
	}
}
