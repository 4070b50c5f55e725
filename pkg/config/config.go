// Package config loads photogrid's settings.
//
// Settings come from three layers, later ones winning:
//
//  1. [Default]
//  2. a TOML file, by default $XDG_CONFIG_HOME/photogrid/config.toml
//  3. PHOTOGRID_* environment variables, e.g. PHOTOGRID_SERVER_URL or
//     PHOTOGRID_CACHE_BACKEND
//
// The merged result is validated before it is returned.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/layout"
)

const appName = "photogrid"

// Config is the full configuration.
type Config struct {
	Server  ServerConfig  `toml:"server" envPrefix:"PHOTOGRID_SERVER_"`
	Cache   CacheConfig   `toml:"cache" envPrefix:"PHOTOGRID_CACHE_"`
	Journal JournalConfig `toml:"journal" envPrefix:"PHOTOGRID_JOURNAL_"`
	Layout  LayoutConfig  `toml:"layout" envPrefix:"PHOTOGRID_LAYOUT_"`
	Preview PreviewConfig `toml:"preview" envPrefix:"PHOTOGRID_PREVIEW_"`
}

// ServerConfig points at the gallery server.
type ServerConfig struct {
	URL     string        `toml:"url" env:"URL" validate:"omitempty,url"`
	Timeout time.Duration `toml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	Retries int           `toml:"retries" env:"RETRIES" validate:"gte=1,lte=10"`
}

// CacheConfig selects the response cache.
type CacheConfig struct {
	Backend string        `toml:"backend" env:"BACKEND" validate:"oneof=file redis none"`
	TTL     time.Duration `toml:"ttl" env:"TTL" validate:"gte=0"`
	// Dir is the file cache directory; empty means the XDG cache dir.
	Dir         string `toml:"dir,omitempty" env:"DIR"`
	RedisURL    string `toml:"redis_url,omitempty" env:"REDIS_URL" validate:"required_if=Backend redis"`
	RedisPrefix string `toml:"redis_prefix" env:"REDIS_PREFIX"`
}

// JournalConfig selects where commit runs are recorded.
type JournalConfig struct {
	Backend       string `toml:"backend" env:"BACKEND" validate:"oneof=file mongo none"`
	Dir           string `toml:"dir,omitempty" env:"DIR"`
	MongoURI      string `toml:"mongo_uri,omitempty" env:"MONGO_URI" validate:"required_if=Backend mongo"`
	MongoDatabase string `toml:"mongo_database" env:"MONGO_DATABASE" validate:"required_if=Backend mongo"`
}

// LayoutConfig describes the display the CLI lays out for.
type LayoutConfig struct {
	Width  int     `toml:"width" env:"WIDTH" validate:"gt=0"`
	Height int     `toml:"height" env:"HEIGHT" validate:"gt=0"`
	Chrome int     `toml:"chrome" env:"CHROME" validate:"gte=0"`
	Rem    int     `toml:"rem" env:"REM" validate:"gt=0"`
	DPR    float64 `toml:"dpr" env:"DPR" validate:"gte=1"`
}

// PreviewConfig configures `photogrid serve`.
type PreviewConfig struct {
	Listen string `toml:"listen" env:"LISTEN" validate:"required,hostname_port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: 10 * time.Second,
			Retries: 3,
		},
		Cache: CacheConfig{
			Backend:     "file",
			TTL:         10 * time.Minute,
			RedisPrefix: "photogrid:",
		},
		Journal: JournalConfig{
			Backend:       "file",
			MongoDatabase: "photogrid",
		},
		Layout: LayoutConfig{
			Width:  1280,
			Height: 800,
			Chrome: 56,
			Rem:    16,
			DPR:    1,
		},
		Preview: PreviewConfig{
			Listen: "127.0.0.1:8077",
		},
	}
}

// Viewport returns a scrollbar-free measurement of the configured display
// at the given size. Zero sizes fall back to the configured ones.
func (l LayoutConfig) Viewport(width, height int) layout.Viewport {
	if width <= 0 {
		width = l.Width
	}
	if height <= 0 {
		height = l.Height
	}
	return layout.Viewport{
		Width:        width,
		Height:       height,
		Chrome:       l.Chrome,
		OuterWidth:   width,
		InnerWidth:   width,
		ContentWidth: width,
		DPR:          l.DPR,
		Rem:          l.Rem,
	}
}

// Dir returns the configuration directory (~/.config/photogrid/).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load builds the configuration. An empty path uses the default file,
// which may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidConfig, "%s: fails %s %s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate")
	}
	if c.Server.URL != "" {
		if err := errors.ValidateBaseURL(c.Server.URL); err != nil {
			return err
		}
	}
	return nil
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating the directory. It refuses to overwrite
// an existing file unless force is set.
func Write(path string, c *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
