package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/overlay"
	"gopkg.in/yaml.v3"
)

// Default values for configuration settings
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTimeout        = 30000.0 // milliseconds
	DefaultWaitUntil      = "load"
	DefaultStartRoute     = "/"
	DefaultLogLevel       = "info"
)

// Config is the formscope configuration file.
type Config struct {
	Browser BrowserConfig `yaml:"browser" json:"browser"`
	Overlay OverlayConfig `yaml:"overlay" json:"overlay"`
	Audit   AuditConfig   `yaml:"audit" json:"audit"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BrowserConfig controls the Playwright session hosting the inspected page.
type BrowserConfig struct {
	Headless  bool           `yaml:"headless" json:"headless"`
	Viewport  ViewportConfig `yaml:"viewport" json:"viewport"`
	Timeout   float64        `yaml:"timeout" json:"timeout"`       // Timeout in milliseconds for page operations
	WaitUntil string         `yaml:"wait_until" json:"wait_until"` // load, domcontentloaded or networkidle
}

// ViewportConfig is the browser viewport size in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// OverlayConfig controls the highlight overlays.
type OverlayConfig struct {
	ScrollPadding float64 `yaml:"scroll_padding" json:"scroll_padding"`
	ClickID       string  `yaml:"click_id" json:"click_id"`
	HoverID       string  `yaml:"hover_id" json:"hover_id"`
	SmoothScroll  *bool   `yaml:"smooth_scroll" json:"smooth_scroll"`
}

// AuditConfig controls where results come from and how they are shown.
type AuditConfig struct {
	ResultsFile string   `yaml:"results_file" json:"results_file"`
	Suppress    []string `yaml:"suppress" json:"suppress"`
	StartRoute  string   `yaml:"start_route" json:"start_route"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" json:"level"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	smooth := true
	return &Config{
		Browser: BrowserConfig{
			Headless:  false,
			Viewport:  ViewportConfig{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
			Timeout:   DefaultTimeout,
			WaitUntil: DefaultWaitUntil,
		},
		Overlay: OverlayConfig{
			ScrollPadding: overlay.DefaultScrollPadding,
			ClickID:       overlay.DefaultClickID,
			HoverID:       overlay.DefaultHoverID,
			SmoothScroll:  &smooth,
		},
		Audit: AuditConfig{
			StartRoute: DefaultStartRoute,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath returns ~/.formscope/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".formscope", "config.yaml"), nil
}

// Load reads the YAML configuration at path on top of the defaults. An empty
// path means DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills fields a partial file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Browser.Viewport.Width == 0 {
		c.Browser.Viewport.Width = def.Browser.Viewport.Width
	}
	if c.Browser.Viewport.Height == 0 {
		c.Browser.Viewport.Height = def.Browser.Viewport.Height
	}
	if c.Browser.Timeout == 0 {
		c.Browser.Timeout = def.Browser.Timeout
	}
	if c.Browser.WaitUntil == "" {
		c.Browser.WaitUntil = def.Browser.WaitUntil
	}
	if c.Overlay.ClickID == "" {
		c.Overlay.ClickID = def.Overlay.ClickID
	}
	if c.Overlay.HoverID == "" {
		c.Overlay.HoverID = def.Overlay.HoverID
	}
	if c.Overlay.SmoothScroll == nil {
		c.Overlay.SmoothScroll = def.Overlay.SmoothScroll
	}
	if c.Audit.StartRoute == "" {
		c.Audit.StartRoute = def.Audit.StartRoute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Browser.Viewport.Width <= 0 || c.Browser.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d",
			c.Browser.Viewport.Width, c.Browser.Viewport.Height)
	}

	if c.Browser.Timeout < 0 {
		return fmt.Errorf("browser timeout cannot be negative")
	}

	switch c.Browser.WaitUntil {
	case "load", "domcontentloaded", "networkidle", "commit":
	default:
		return fmt.Errorf("invalid wait_until: %s (must be 'load', 'domcontentloaded', 'networkidle' or 'commit')", c.Browser.WaitUntil)
	}

	if c.Overlay.ScrollPadding < 0 {
		return fmt.Errorf("scroll_padding cannot be negative")
	}

	if c.Overlay.ClickID == c.Overlay.HoverID {
		return fmt.Errorf("click_id and hover_id must differ, both are %q", c.Overlay.ClickID)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// SmoothScrollEnabled reports whether overlays scroll smoothly.
func (c *Config) SmoothScrollEnabled() bool {
	return c.Overlay.SmoothScroll == nil || *c.Overlay.SmoothScroll
}
