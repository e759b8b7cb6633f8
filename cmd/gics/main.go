// Package main implements the gics command-line tool.
//
// gics resolves GICS codes against the bundled definition tables:
//
//	gics resolve 45103010
//	gics children 1010 -o json
//	gics relate 101010 10
//	gics tree 10 -V 20140228
//	gics versions
//	gics export --db .gics/gics.db
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gics/internal/config"
	"gics/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath        string
	definitionVersion string
	outputFormat      string
	verbose           bool

	// Loaded by PersistentPreRunE
	cfg    *config.Config
	logger *zap.SugaredLogger
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gics",
	Short: "Resolve Global Industry Classification Standard codes",
	Long: `gics resolves GICS codes against bundled definition tables.

A code is 2 (Sector), 4 (Industry Group), 6 (Industry) or 8 (Sub-Industry)
digits long. Codes that are not part of the selected revision are reported
as invalid rather than as errors; only an unknown revision fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Get(logging.CategoryCLI)
		logging.Get(logging.CategoryBoot).Debugw("configuration loaded",
			"path", path,
			"version", cfg.Definitions.Version,
			"output", cfg.Output.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
// Flags win over the config file and the environment.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("definitions-version") {
		c.Definitions.Version = definitionVersion
	}
	if flags.Changed("output") {
		c.Output.Format = outputFormat
	}
	if verbose {
		c.Logging.Level = "debug"
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .gics/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&definitionVersion, "definitions-version", "V", "", "GICS revision to resolve against")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "Levels to descend below the root (0 for all)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "SQLite database path (default from config)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Re-export versions whose content is unchanged")

	rootCmd.AddCommand(
		resolveCmd,
		childrenCmd,
		relateCmd,
		treeCmd,
		versionsCmd,
		exportCmd,
	)
}

// activeConfig returns the loaded config, or the defaults when commands run
// without the root pre-run.
func activeConfig() *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg
}

func cliLogger() *zap.SugaredLogger {
	if logger == nil {
		return logging.Get(logging.CategoryCLI)
	}
	return logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
