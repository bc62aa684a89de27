package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flutteredit/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultTerminal is the terminal emulator launched when none is configured.
const DefaultTerminal = "gnome-terminal"

// Config represents the application configuration structure.
// It is read once at startup; the editor never writes its own state back.
type Config struct {
	Window struct {
		Title  string `yaml:"title"`  // Main window title
		Width  int    `yaml:"width"`  // Initial window width
		Height int    `yaml:"height"` // Initial window height
	} `yaml:"window"`
	Terminal struct {
		Command string   `yaml:"command"` // Terminal emulator executable
		Args    []string `yaml:"args"`    // Extra arguments passed to the terminal
	} `yaml:"terminal"`
	Metrics struct {
		RefreshInterval int `yaml:"refresh_interval"` // Milliseconds between metric samples
	} `yaml:"metrics"`
	Explorer struct {
		Hide []string `yaml:"hide"` // Glob patterns of entry names to leave out of the listing
		Sort bool     `yaml:"sort"` // Sort the listing by name
	} `yaml:"explorer"`
	Editor struct {
		WatchExternalChanges bool `yaml:"watch_external_changes"` // Report edits made outside the editor
	} `yaml:"editor"`
	Debug bool `yaml:"debug"`
}

// DefaultPath returns ~/.config/flutteredit/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "flutteredit", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.FromOSError("cannot read", path, errors.FileReadFailed, err), "error reading config file")
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Window.Title = "Flutter Editor"
	cfg.Window.Width = 1100
	cfg.Window.Height = 720
	cfg.Terminal.Command = DefaultTerminal
	cfg.Terminal.Args = []string{}
	cfg.Metrics.RefreshInterval = 1000
	cfg.Explorer.Hide = []string{}
	cfg.Explorer.Sort = false
	cfg.Editor.WatchExternalChanges = false
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// SaveConfig writes cfg to path, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", nil)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.NewConfigError("window size must be positive", "window", nil)
	}
	if c.Terminal.Command == "" {
		return errors.NewConfigError("terminal command is required", "terminal.command", nil)
	}
	if c.Metrics.RefreshInterval <= 0 {
		return errors.NewConfigError("refresh interval must be > 0", "metrics.refresh_interval", nil)
	}
	if _, err := c.HidePatterns(); err != nil {
		return err
	}
	return nil
}

// HidePatterns compiles the explorer hide globs.
func (c *Config) HidePatterns() ([]glob.Glob, error) {
	patterns := make([]glob.Glob, 0, len(c.Explorer.Hide))
	for i, p := range c.Explorer.Hide {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid hide pattern", fmt.Sprintf("explorer.hide[%d]", i), err)
		}
		patterns = append(patterns, g)
	}
	return patterns, nil
}

// RefreshInterval returns the metrics sampling period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Metrics.RefreshInterval) * time.Millisecond
}
