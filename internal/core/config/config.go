// Package config handles configuration loading and validation for draftlens.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/draftlens/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	TUI     TUIConfig     `yaml:"tui"`
	Stub    StubConfig    `yaml:"stub"`
}

// ServiceConfig locates the remote analysis service.
type ServiceConfig struct {
	BaseURL      string        `yaml:"base_url"`
	AnalyzePath  string        `yaml:"analyze_path"`
	FeedbackPath string        `yaml:"feedback_path"`
	Timeout      time.Duration `yaml:"timeout"` // 0 = no timeout
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// StubConfig configures the local stub service started by `draftlens stub`.
type StubConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL:      "http://localhost:8000",
			AnalyzePath:  "/analyze",
			FeedbackPath: "/feedback",
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Stub: StubConfig{
			Addr:           "localhost:8000",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = defaults.Service.BaseURL
	}
	if c.Service.AnalyzePath == "" {
		c.Service.AnalyzePath = defaults.Service.AnalyzePath
	}
	if c.Service.FeedbackPath == "" {
		c.Service.FeedbackPath = defaults.Service.FeedbackPath
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Stub.Addr == "" {
		c.Stub.Addr = defaults.Stub.Addr
	}
	if len(c.Stub.AllowedOrigins) == 0 {
		c.Stub.AllowedOrigins = defaults.Stub.AllowedOrigins
	}
}

// AnalyzeURL returns the absolute analyze endpoint.
func (s ServiceConfig) AnalyzeURL() string {
	return joinURL(s.BaseURL, s.AnalyzePath)
}

// FeedbackURL returns the absolute feedback endpoint.
func (s ServiceConfig) FeedbackURL() string {
	return joinURL(s.BaseURL, s.FeedbackPath)
}

func joinURL(base, path string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + path
}
