package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/quill/internal/core/styles"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("service.url", c.Service.URL, serviceURLValid),
		criterio.Run("service.timeout", c.Service.Timeout, timeoutPositive),
		criterio.Run("tui.theme", c.TUI.Theme, themeKnown),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
	)
}

func serviceURLValid(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("must be an absolute URL with a host, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

func timeoutPositive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

func themeKnown(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created on first export
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
