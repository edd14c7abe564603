// Package config loads and saves the scriptkit tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default values applied when the config file is missing or silent.
const (
	DefaultDiffFormat = "unified"
	DefaultMaxBackups = 10
)

// Config holds the script library tool configuration. MaxBackups caps how
// many backups of the library file are kept; 0 disables pruning.
type Config struct {
	LibraryPath string            `toml:"library_path"`
	DiffFormat  string            `toml:"diff_format"`
	MaxBackups  int               `toml:"max_backups"`
	Settings    map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults: a key left out keeps its default value, so
	// an explicit max_backups = 0 (disable pruning) stays distinguishable
	// from an absent key.
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.DiffFormat == "" {
		config.DiffFormat = DefaultDiffFormat
	}
	if config.LibraryPath == "" {
		config.LibraryPath = DefaultLibraryPath()
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "scriptkit", "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		LibraryPath:     DefaultLibraryPath(),
		DiffFormat:      DefaultDiffFormat,
		MaxBackups:      DefaultMaxBackups,
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// DefaultLibraryPath returns where the library file lives when the config
// does not name one.
func DefaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", ".scriptkit", "library.json")
	}
	return filepath.Join(home, ".local", "share", "scriptkit", "library.json")
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "scriptkit"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0o755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first
// (which override persisted settings). Returns empty string if not found in
// either source.
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session).
// Session settings override persisted settings with the same key.
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	if c.Settings != nil {
		for k, v := range c.Settings {
			result[k] = v
		}
	}

	if c.sessionSettings != nil {
		for k, v := range c.sessionSettings {
			result[k] = v
		}
	}

	return result
}

// Save persists the configuration to the TOML file.
// Note: This only persists the exported fields, not session settings.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
