// Package commands wires the CLI surface: global flags, the default
// interactive session, and the headless subcommands.
package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/colonyops/quill/internal/core/config"
	"github.com/colonyops/quill/internal/core/convert"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client talks to the conversion service
	Client *convert.Client

	Logger zerolog.Logger
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quill", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/quill/quill.log
// On Linux: $XDG_STATE_HOME/quill/quill.log (defaults to ~/.local/state/quill/quill.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "quill", "quill.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "quill", "quill.log")
	}

	return filepath.Join(home, ".local", "state", "quill", "quill.log")
}
