package config

import (
	"sort"

	"gics/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, console
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}

// Options converts the config into logging.Options. When any category is
// configured, every known category is resolved through IsCategoryEnabled.
func (c *LoggingConfig) Options() logging.Options {
	opts := logging.Options{
		Level:  c.Level,
		Format: c.Format,
	}
	if c.Categories != nil {
		opts.Categories = make(map[string]bool, len(logging.AllCategories))
		for _, category := range logging.AllCategories {
			opts.Categories[string(category)] = c.IsCategoryEnabled(string(category))
		}
	}
	return opts
}

// unknownCategories returns configured category names that no logger uses.
func (c *LoggingConfig) unknownCategories() []string {
	var unknown []string
	for name := range c.Categories {
		found := false
		for _, category := range logging.AllCategories {
			if string(category) == name {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
