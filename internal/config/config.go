// Package config loads the gics tool configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gics/internal/definitions"
	"gics/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all gics configuration.
type Config struct {
	// Definition tables
	Definitions DefinitionsConfig `yaml:"definitions"`

	// Rendering of command output
	Output OutputConfig `yaml:"output"`

	// SQLite export
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefinitionsConfig selects the revision used when none is given explicitly.
type DefinitionsConfig struct {
	Version string `yaml:"version"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json, yaml
	Indent int    `yaml:"indent"` // tree indent width for text output
}

// StoreConfig configures the SQLite export.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// Valid output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats lists all supported output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// ValidLogLevels lists all supported log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Definitions: DefinitionsConfig{
			Version: definitions.DefaultVersion,
		},
		Output: OutputConfig{
			Format: FormatText,
			Indent: 2,
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(".gics", "gics.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultConfigPath returns the default path to .gics/config.yaml.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".gics", "config.yaml")
	}
	return filepath.Join(cwd, ".gics", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GICS_VERSION"); v != "" {
		c.Definitions.Version = v
	}
	if v := os.Getenv("GICS_OUTPUT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("GICS_DB"); v != "" {
		c.Store.DatabasePath = v
	}
	if v := os.Getenv("GICS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !definitions.IsKnownVersion(c.Definitions.Version) {
		return &definitions.UnsupportedVersionError{
			Requested: c.Definitions.Version,
			Known:     definitions.KnownVersions(),
		}
	}

	if !contains(ValidFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidFormats)
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("invalid output indent: %d", c.Output.Indent)
	}

	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	if unknown := c.Logging.unknownCategories(); len(unknown) > 0 {
		return fmt.Errorf("unknown log categories: %v (valid: %v)", unknown, logging.AllCategories)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
