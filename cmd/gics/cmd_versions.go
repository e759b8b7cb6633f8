package main

import (
	"fmt"

	"gics/internal/definitions"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the supported GICS revisions",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	c := activeConfig()

	tables, err := definitions.LoadAll(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	views := make([]versionView, 0, len(tables))
	for _, v := range definitions.KnownVersions() {
		counts := tables[v].CountByLevel()
		views = append(views, versionView{
			Version:        v,
			Default:        v == c.Definitions.Version,
			Sectors:        counts[definitions.LevelSector],
			IndustryGroups: counts[definitions.LevelIndustryGroup],
			Industries:     counts[definitions.LevelIndustry],
			SubIndustries:  counts[definitions.LevelSubIndustry],
		})
	}

	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, c.Output.Format, views); ok {
		return err
	}
	for _, v := range views {
		marker := " "
		if v.Default {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s  %s\n", validStyle.Render(marker), codeStyle.Render(v.Version),
			mutedStyle.Render(fmt.Sprintf("%d sectors, %d industry groups, %d industries, %d sub-industries",
				v.Sectors, v.IndustryGroups, v.Industries, v.SubIndustries)))
	}
	return nil
}
