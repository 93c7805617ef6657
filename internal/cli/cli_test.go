package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/config"
)

// testEnv writes a config file pointing the cache at a temp dir and clears
// environment overrides. It returns the config path and the cache dir.
func testEnv(t *testing.T, extra string) (string, string) {
	t.Helper()
	for _, k := range []string{"MERIDIAN_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY", "MERIDIAN_ADDR", "MERIDIAN_REDIS_ADDR", "MERIDIAN_DATASET"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	path := filepath.Join(dir, "config.toml")
	body := "[cache]\ndir = " + strconv.Quote(cacheDir) + "\n\n[social]\ndelay = \"0s\"\n" + extra
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	prev := out
	out = io.Discard
	t.Cleanup(func() { out = prev })
	return path, cacheDir
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRenderCommand(t *testing.T) {
	cfgPath, _ := testEnv(t, "")
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		files map[string]string // file -> expected prefix
	}{
		{
			name:  "orbital default format",
			args:  []string{"render", "orbital", "--at", "2s", "-o", filepath.Join(dir, "orbit.svg")},
			files: map[string]string{"orbit.svg": "<svg"},
		},
		{
			name: "network several formats",
			args: []string{"render", "network", "--hover", "Doha", "-f", "svg,json", "-o", filepath.Join(dir, "hubs")},
			files: map[string]string{
				"hubs.svg":  "<svg",
				"hubs.json": "{",
			},
		},
		{
			name:  "nodelink dot",
			args:  []string{"render", "nodelink", "-f", "dot", "--detailed", "-o", filepath.Join(dir, "net.dot")},
			files: map[string]string{"net.dot": "digraph"},
		},
		{
			name:  "market png",
			args:  []string{"render", "market", "-f", "png", "--width", "400", "--height", "240", "-o", filepath.Join(dir, "market.png")},
			files: map[string]string{"market.png": "\x89PNG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, cfgPath, tt.args...); err != nil {
				t.Fatalf("render: %v", err)
			}
			for name, prefix := range tt.files {
				data, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					t.Fatal(err)
				}
				if !strings.HasPrefix(string(data), prefix) {
					t.Errorf("%s starts with %q, want %q", name, firstBytes(data), prefix)
				}
			}
		})
	}
}

func firstBytes(b []byte) string {
	if len(b) > 16 {
		b = b[:16]
	}
	return string(b)
}

func TestRenderCommandErrors(t *testing.T) {
	cfgPath, _ := testEnv(t, "")
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown target", []string{"render", "tower"}},
		{"unsupported format", []string{"render", "market", "-f", "svg", "-o", filepath.Join(dir, "x")}},
		{"bad width", []string{"render", "orbital", "--width", "0", "-o", filepath.Join(dir, "x")}},
		{"unknown hub", []string{"render", "network", "--hover", "Atlantis", "-o", filepath.Join(dir, "x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, cfgPath, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderUsesCache(t *testing.T) {
	cfgPath, cacheDir := testEnv(t, "")
	target := filepath.Join(t.TempDir(), "o.svg")

	if _, err := run(t, cfgPath, "render", "orbital", "-o", target); err != nil {
		t.Fatal(err)
	}
	n, err := countFiles(cacheDir)
	if err != nil || n != 1 {
		t.Fatalf("cache entries = %d, %v; want 1", n, err)
	}

	if _, err := run(t, cfgPath, "render", "orbital", "--no-cache", "--at", "3s", "-o", target); err != nil {
		t.Fatal(err)
	}
	if n, _ := countFiles(cacheDir); n != 1 {
		t.Errorf("--no-cache wrote to the cache: %d entries", n)
	}

	if _, err := run(t, cfgPath, "cache", "clear", "--expired"); err != nil {
		t.Fatal(err)
	}
	if n, _ := countFiles(cacheDir); n != 1 {
		t.Errorf("cache clear --expired removed a live entry: %d left", n)
	}

	if _, err := run(t, cfgPath, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n, _ := countFiles(cacheDir); n != 0 {
		t.Errorf("cache clear left %d entries", n)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, target, format string
		count                  int
		want                   string
	}{
		{"", "orbital", "svg", 1, "orbital.svg"},
		{"", "network", "json", 2, "network.json"},
		{"out/a.svg", "orbital", "svg", 1, "out/a.svg"},
		{"out/a.svg", "network", "json", 2, "out/a.json"},
		{"hubs", "network", "svg", 2, "hubs.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.target, tt.format, tt.count); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %d) = %q, want %q", tt.output, tt.target, tt.format, tt.count, got, tt.want)
		}
	}
}

func TestRenderRequestsDeduplicates(t *testing.T) {
	reqs, err := renderRequests("orbital", renderOpts{formats: []string{"", "svg", "json"}, width: 100, height: 100, seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 || reqs[0].Format != "svg" || reqs[1].Format != "json" {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestHubsCommand(t *testing.T) {
	cfgPath, _ := testEnv(t, "")

	got, err := run(t, cfgPath, "hubs")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"BGWM", "TORONTO", "JOHANNESBURG", "Energy Infra", "7 hubs"} {
		if !strings.Contains(got, want) {
			t.Errorf("hubs output missing %q", want)
		}
	}

	got, err = run(t, cfgPath, "hubs", "--json", "--width", "1000", "--height", "500")
	if err != nil {
		t.Fatal(err)
	}
	var points map[string]struct{ X, Y float64 }
	if err := json.Unmarshal([]byte(got), &points); err != nil {
		t.Fatal(err)
	}
	if len(points) != 7 {
		t.Errorf("got %d points, want 7", len(points))
	}
}

func TestChatOnceOffline(t *testing.T) {
	cfgPath, _ := testEnv(t, "")

	got, err := run(t, cfgPath, "chat", "--once", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != concierge.Offline {
		t.Errorf("reply = %q, want offline notice", got)
	}

	if _, err := run(t, cfgPath, "chat", "--once", "  "); err == nil {
		t.Error("blank message should fail")
	}
}

func TestSocialCommand(t *testing.T) {
	cfgPath, _ := testEnv(t, "")

	got, err := run(t, cfgPath, "social", "instagram", "youtube", "--seed", "7")
	if err != nil {
		t.Fatal(err)
	}
	i, y := strings.Index(got, "INSTAGRAM"), strings.Index(got, "YOUTUBE")
	if i < 0 || y < 0 || i > y {
		t.Errorf("cards missing or out of order:\n%s", got)
	}
	if !strings.Contains(got, "@bensonglobal") {
		t.Error("missing handle")
	}

	got, err = run(t, cfgPath, "social", "myspace")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "LINKEDIN") {
		t.Errorf("unknown platform should fall back to LinkedIn:\n%s", got)
	}
}

func TestConfigCommands(t *testing.T) {
	cfgPath, cacheDir := testEnv(t, "")
	t.Setenv("GEMINI_API_KEY", "secret-key")

	got, err := run(t, cfgPath, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "secret-key") || !strings.Contains(got, "********") {
		t.Errorf("api key not masked:\n%s", got)
	}
	var shown config.Config
	if _, err := toml.Decode(got, &shown); err != nil {
		t.Fatal(err)
	}
	if shown.Cache.Dir != cacheDir {
		t.Errorf("cache dir = %q, want %q", shown.Cache.Dir, cacheDir)
	}

	got, err = run(t, cfgPath, "config", "path")
	if err != nil || strings.TrimSpace(got) != cfgPath {
		t.Errorf("config path = %q, %v", got, err)
	}

	fresh := filepath.Join(t.TempDir(), "sub", "config.toml")
	if _, err := run(t, fresh, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(fresh); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	got, err = run(t, cfgPath, "cache", "path")
	if err != nil || strings.TrimSpace(got) != cacheDir {
		t.Errorf("cache path = %q, %v", got, err)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	cfg := config.Default()
	cfg.Cache.Dir = "/srv/meridian"
	if dir, _ := cacheDir(cfg); dir != "/srv/meridian" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	c, err := newCache(ctx, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "snapshot:k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if n, _ := countFiles(cfg.Cache.Dir); n != 1 {
		t.Errorf("file backend wrote %d entries", n)
	}

	cfg.Cache.Backend = config.BackendNone
	c, _ = newCache(ctx, cfg, false)
	if _, hit, _ := c.Get(ctx, "snapshot:k"); hit {
		t.Error("none backend should never hit")
	}

	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.Redis.Addr = "127.0.0.1:1"
	if _, err := newCache(ctx, cfg, false); err == nil {
		t.Error("unreachable redis should fail")
	}
	if _, err := newCache(ctx, cfg, true); err != nil {
		t.Errorf("--no-cache should skip redis: %v", err)
	}
}

func TestVersion(t *testing.T) {
	cfgPath, _ := testEnv(t, "")
	got, err := run(t, cfgPath, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "meridian version") {
		t.Errorf("version output = %q", got)
	}
}

func TestCompletion(t *testing.T) {
	cfgPath, _ := testEnv(t, "")
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			got, err := run(t, cfgPath, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, "meridian") {
				t.Errorf("%s script does not mention meridian", shell)
			}
		})
	}
	if _, err := run(t, cfgPath, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded, want error")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestConciergeLabel(t *testing.T) {
	cfg := config.Default()
	if got := conciergeLabel(cfg); got != "offline" {
		t.Errorf("conciergeLabel() = %q, want offline", got)
	}
	cfg.Concierge.APIKey = "key"
	if got := conciergeLabel(cfg); got != cfg.Concierge.Model {
		t.Errorf("conciergeLabel() = %q, want %q", got, cfg.Concierge.Model)
	}
}
