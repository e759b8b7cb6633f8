package main

import (
	"fmt"

	"gics/internal/definitions"
	"gics/internal/store"

	"github.com/spf13/cobra"
)

var (
	exportDBPath string
	exportForce  bool
)

// exportResult is the structured output of the export command.
type exportResult struct {
	Database string   `json:"database" yaml:"database"`
	RunID    string   `json:"run_id" yaml:"run_id"`
	Versions []string `json:"versions" yaml:"versions"`
	Skipped  []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Entries  int      `json:"entries" yaml:"entries"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every revision to a SQLite database",
	Long: `Write all definition tables to SQLite so they can be queried or joined
with plain SQL. Revisions already exported with identical content are
skipped unless --force is given; otherwise their rows are replaced.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	c := activeConfig()
	ctx := commandContext(cmd)

	dbPath := exportDBPath
	if dbPath == "" {
		dbPath = c.Store.DatabasePath
	}

	tables, err := definitions.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	s, err := store.NewExportStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open export store: %w", err)
	}
	defer s.Close()

	stats, err := s.ExportAll(ctx, tables, exportForce)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cliLogger().Infow("exported definitions", "db", dbPath, "run_id", stats.RunID)

	res := exportResult{
		Database: dbPath,
		RunID:    stats.RunID,
		Versions: stats.Versions,
		Skipped:  stats.Skipped,
		Entries:  stats.Entries,
	}
	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, c.Output.Format, res); ok {
		return err
	}
	fmt.Fprintf(w, "%s %d entries across %d versions to %s\n",
		validStyle.Render("Exported"), res.Entries, len(res.Versions), codeStyle.Render(dbPath))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("%d unchanged versions skipped", len(res.Skipped))))
	}
	fmt.Fprintf(w, "%s\n", mutedStyle.Render("run "+res.RunID))
	return nil
}
