// Package logging provides categorized structured logging for the gics tools.
//
// Loggers are zap SugaredLoggers named after their category. Until Initialize
// (or SetLogger) is called every category discards its output, so library
// packages may log freely without configuring anything.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot        Category = "boot"        // Startup, config resolution
	CategoryDefinitions Category = "definitions" // Dataset parsing and caching
	CategoryResolver    Category = "resolver"    // Code resolution
	CategoryStore       Category = "store"       // SQLite export
	CategoryCLI         Category = "cli"         // Command execution
)

// AllCategories lists every category in declaration order.
var AllCategories = []Category{
	CategoryBoot,
	CategoryDefinitions,
	CategoryResolver,
	CategoryStore,
	CategoryCLI,
}

// Options mirrors config.LoggingConfig to avoid an import cycle
// (config validates versions through the definitions package, which logs).
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	Categories map[string]bool // nil enables every category
}

var (
	mu         sync.RWMutex
	base       = zap.NewNop()
	categories map[string]bool
	loggers    = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds a zap logger writing to stderr and installs it.
func Initialize(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return fmt.Errorf("invalid log format: %s (valid: json, console)", opts.Format)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(logger, opts.Categories)
	return nil
}

// SetLogger installs logger as the root of every category. Tests use it with
// zaptest or observer cores.
func SetLogger(logger *zap.Logger, enabled map[string]bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	base = logger
	categories = enabled
	loggers = make(map[Category]*zap.SugaredLogger)
}

// Reset restores the silent default.
func Reset() {
	SetLogger(nil, nil)
}

// Get returns the logger for a category. Disabled categories get a no-op
// logger.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	if isEnabled(category) {
		l = base.Named(string(category)).Sugar()
	} else {
		l = zap.NewNop().Sugar()
	}
	loggers[category] = l
	return l
}

// isEnabled must be called with mu held.
func isEnabled(category Category) bool {
	if categories == nil {
		return true
	}
	enabled, exists := categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Sync flushes the root logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// ParseLevel maps a config level string onto a zap level. Empty means warn.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", level)
	}
}
