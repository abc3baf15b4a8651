package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/draftlens/internal/analysis"
	"github.com/colonyops/draftlens/internal/core/config"
	"github.com/colonyops/draftlens/internal/core/logging"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ServiceURL   string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Client builds an analysis client for the configured service.
func (f *Flags) Client() *analysis.Client {
	return analysis.New(f.Config.Service, logging.Component("analysis"))
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "draftlens", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/draftlens/draftlens.log
// On Linux: $XDG_STATE_HOME/draftlens/draftlens.log (defaults to ~/.local/state/draftlens/draftlens.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "draftlens", "draftlens.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "draftlens", "draftlens.log")
	}

	return filepath.Join(home, ".local", "state", "draftlens", "draftlens.log")
}
