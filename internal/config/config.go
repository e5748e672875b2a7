// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultFormat         = "plain"
	DefaultPlainTmpl      = "{{.Profile}}"
	DefaultNotifyTimeout  = 5 * time.Second
	DefaultNotifyInterval = 5 * time.Second
	DefaultNotifyIcon     = "power-profile-balanced-symbolic"
	DefaultNotifyAppName  = "Power Profiles"
	configDirName         = "powerprof"
	configFileName        = "config.toml"
)

// Output formats accepted by [output] format.
var Formats = []string{"plain", "json", "yaml", "waybar", "dmenu"}

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = errors.New("invalid output format")

// Config represents the powerprof configuration.
type Config struct {
	Output OutputConfig `toml:"output"`
	Notify NotifyConfig `toml:"notify"`
	TUI    TUIConfig    `toml:"tui"`
	Watch  WatchConfig  `toml:"watch"`
}

// OutputConfig controls how get, list and watch print profiles.
type OutputConfig struct {
	Format   string `toml:"format"`   // plain, json, yaml, waybar, dmenu
	Template string `toml:"template"` // text/template used by plain output
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	Enabled     bool     `toml:"enabled"`      // Send notices as desktop notifications
	AppName     string   `toml:"app_name"`     // Notification title
	Icon        string   `toml:"icon"`         // Icon name or path
	Timeout     Duration `toml:"timeout"`      // Expiry; 0 = server default
	MinInterval Duration `toml:"min_interval"` // Suppress repeats of the same notice
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	NotifyOnChange bool `toml:"notify_on_change"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   DefaultFormat,
			Template: DefaultPlainTmpl,
		},
		Notify: NotifyConfig{
			Enabled:     false,
			AppName:     DefaultNotifyAppName,
			Icon:        DefaultNotifyIcon,
			Timeout:     Duration(DefaultNotifyTimeout),
			MinInterval: Duration(DefaultNotifyInterval),
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
		Watch: WatchConfig{
			NotifyOnChange: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDirName, configFileName)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks option values that TOML decoding cannot.
func (c *Config) Validate() error {
	if !IsValidFormat(c.Output.Format) {
		return fmt.Errorf("%w %q (want one of %v)", ErrInvalidFormat, c.Output.Format, Formats)
	}
	if c.Output.Template != "" {
		if _, err := template.New("output").Parse(c.Output.Template); err != nil {
			return fmt.Errorf("output template: %w", err)
		}
	}
	if c.Notify.Timeout < 0 {
		return errors.New("notify timeout must not be negative")
	}
	if c.Notify.MinInterval < 0 {
		return errors.New("notify min_interval must not be negative")
	}
	return nil
}

// IsValidFormat reports whether format names a known output format.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
