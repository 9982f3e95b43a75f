package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPollInterval is the cadence at which the UI drains outcomes
const DefaultPollInterval = 200 * time.Millisecond

// Config holds the application configuration. User settings (token, API
// options, directories) live in the settings file, not here.
type Config struct {
	LogLevel       string       `toml:"log_level" yaml:"log_level"`
	LogFormat      string       `toml:"log_format" yaml:"log_format"`
	LogFile        string       `toml:"log_file" yaml:"log_file"`
	AudioDevice    string       `toml:"audio_device" yaml:"audio_device"`
	PollInterval   Duration     `toml:"poll_interval" yaml:"poll_interval"`
	SettingsPath   string       `toml:"settings_path" yaml:"settings_path"`
	HistoryPath    string       `toml:"history_path" yaml:"history_path"`
	HistoryEnabled bool         `toml:"history_enabled" yaml:"history_enabled"`
	Hotkey         HotkeyConfig `toml:"hotkey" yaml:"hotkey"`
}

// HotkeyConfig holds the press-and-hold hotkey
type HotkeyConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	Modifiers []string `toml:"modifiers" yaml:"modifiers"`
	Key       string   `toml:"key" yaml:"key"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{HistoryEnabled: true}
	cfg.Hotkey.Enabled = true
	cfg.applyDefaults()
	return cfg
}

// AppDir returns the per-user application directory
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lemonfox_transkriptor_gui")
}

// DefaultPath returns <appdir>/config.toml
func DefaultPath() string {
	return filepath.Join(AppDir(), "config.toml")
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// An empty path means DefaultPath; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	cfg := Default()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return cfg, nil
}

// LoadEnv loads a .env file into the process environment. Variables already
// set win. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(AppDir(), "transkriptor.log")
	}
	if c.PollInterval.Duration <= 0 {
		c.PollInterval.Duration = DefaultPollInterval
	}
	if c.SettingsPath == "" {
		c.SettingsPath = filepath.Join(AppDir(), "settings.json")
	}
	if c.HistoryPath == "" {
		c.HistoryPath = filepath.Join(AppDir(), "history.db")
	}
	if len(c.Hotkey.Modifiers) == 0 {
		c.Hotkey.Modifiers = []string{"ctrl", "shift"}
	}
	if c.Hotkey.Key == "" {
		c.Hotkey.Key = "space"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.LogFile = os.ExpandEnv(c.LogFile)
	c.SettingsPath = os.ExpandEnv(c.SettingsPath)
	c.HistoryPath = os.ExpandEnv(c.HistoryPath)
}
