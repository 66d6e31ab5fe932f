// Package config handles configuration loading and validation for quill.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or leaves fields unset.
const (
	DefaultServiceURL = "http://localhost:8000"
	DefaultTimeout    = 2 * time.Minute
	DefaultTheme      = "tokyo-night"
)

// Config holds the application configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	TUI     TUIConfig     `yaml:"tui"`
	Export  ExportConfig  `yaml:"export"`
}

// ServiceConfig describes the remote conversion service.
type ServiceConfig struct {
	// URL is the base URL of the conversion service, without the /api suffix.
	URL string `yaml:"url"`
	// Timeout bounds a single conversion request. Conversions of large
	// books are slow, so the default is generous.
	Timeout time.Duration `yaml:"timeout"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// ExportConfig controls where exported markdown files are written.
type ExportConfig struct {
	// Dir is the directory for saved documents. Empty means the current
	// working directory.
	Dir string `yaml:"dir"`
}

// Default returns a config populated with defaults.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			URL:     DefaultServiceURL,
			Timeout: DefaultTimeout,
		},
		TUI: TUIConfig{
			Theme: DefaultTheme,
		},
	}
}

// Load reads the config file at path, applies defaults for unset fields,
// and validates the result. A missing file is not an error; defaults are
// used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// no config file, defaults apply
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.URL == "" {
		c.Service.URL = DefaultServiceURL
	}
	if c.Service.Timeout <= 0 {
		c.Service.Timeout = DefaultTimeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
}
