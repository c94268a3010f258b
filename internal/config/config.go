// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Output formats.
const (
	FormatText  = "text"
	FormatColor = "color"
	FormatJSON  = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the application configuration.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	History HistoryConfig `toml:"history"`
	Storage StorageConfig `toml:"storage"`
}

// OutputConfig holds display settings.
type OutputConfig struct {
	Format string `toml:"format"` // "text", "color", "json"
	Color  string `toml:"color"`  // "auto", "always", "never"
}

// HistoryConfig holds conversion history settings.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"` // default number of entries listed
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   20,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "berlinclock.db"
	}
	return filepath.Join(home, ".local", "share", "berlinclock", "history.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "berlinclock", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("BERLINCLOCK_FORMAT"); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("BERLINCLOCK_COLOR"); v != "" {
		cfg.Output.Color = strings.ToLower(v)
	}

	if v := os.Getenv("BERLINCLOCK_HISTORY"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BERLINCLOCK_HISTORY must be a boolean, got %q", v)
		}
		cfg.History.Enabled = enabled
	}
	if v := os.Getenv("BERLINCLOCK_HISTORY_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BERLINCLOCK_HISTORY_LIMIT must be an integer, got %q", v)
		}
		cfg.History.Limit = limit
	}

	if v := os.Getenv("BERLINCLOCK_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !IsValidFormat(c.Output.Format) {
		return fmt.Errorf("format must be one of text, color, json, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Output.Color)
	}
	if c.History.Limit <= 0 {
		return errors.New("history limit must be positive")
	}
	if c.History.Enabled && c.Storage.DBPath == "" {
		return errors.New("db_path must be set when history is enabled")
	}
	return nil
}

// IsValidFormat returns true if f is a known output format.
func IsValidFormat(f string) bool {
	switch f {
	case FormatText, FormatColor, FormatJSON:
		return true
	default:
		return false
	}
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
