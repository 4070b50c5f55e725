package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/photogrid/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != "file" || cfg.Layout.Rem != 16 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, `
[server]
url = "https://photos.example.com"
timeout = "30s"

[cache]
backend = "none"

[layout]
width = 1920
dpr = 2.0
`)
	t.Setenv("PHOTOGRID_LAYOUT_WIDTH", "1024")
	t.Setenv("PHOTOGRID_SERVER_RETRIES", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.URL != "https://photos.example.com" || cfg.Server.Timeout != 30*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Retries != 5 {
		t.Errorf("env should override retries, got %d", cfg.Server.Retries)
	}
	if cfg.Layout.Width != 1024 || cfg.Layout.DPR != 2 || cfg.Layout.Height != 800 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis" }},
		{"mongo without uri", func(c *Config) { c.Journal.Backend = "mongo" }},
		{"zero width", func(c *Config) { c.Layout.Width = 0 }},
		{"dpr below one", func(c *Config) { c.Layout.DPR = 0.5 }},
		{"bad listen", func(c *Config) { c.Preview.Listen = "localhost" }},
		{"ftp server", func(c *Config) { c.Server.URL = "ftp://x.org" }},
		{"no retries", func(c *Config) { c.Server.Retries = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}

	ok := Default()
	ok.Cache.Backend = "redis"
	ok.Cache.RedisURL = "redis://localhost:6379/0"
	if err := ok.Validate(); err != nil {
		t.Errorf("redis with url: %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Server.URL = "https://x.org"
	if err := Write(path, cfg, false); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, cfg, false); err == nil {
		t.Error("Write should refuse to overwrite without force")
	}
	if err := Write(path, cfg, true); err != nil {
		t.Errorf("Write(force) = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Server.URL != "https://x.org" || loaded.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip = %+v", loaded)
	}
}

func TestViewport(t *testing.T) {
	l := Default().Layout
	vp := l.Viewport(0, 600)
	if vp.Width != 1280 || vp.Height != 600 || vp.Chrome != 56 || vp.OuterWidth != vp.InnerWidth {
		t.Errorf("Viewport() = %+v", vp)
	}
}
