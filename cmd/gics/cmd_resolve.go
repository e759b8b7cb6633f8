package main

import (
	"gics/internal/logging"
	"gics/pkg/gics"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <code>...",
	Short: "Resolve codes to their sector, industry group, industry and sub-industry",
	Long: `Resolve each code against the selected revision and print every level it
reaches. Unknown or malformed codes are reported as invalid; the command
only fails when the revision itself is unsupported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	c := activeConfig()
	log := logging.Get(logging.CategoryResolver)

	views := make([]resolveView, 0, len(args))
	for _, code := range args {
		g, err := gics.NewWithVersion(code, c.Definitions.Version)
		if err != nil {
			return err
		}
		log.Debugw("resolved code", "input", code, "version", g.Version(), "valid", g.IsValid(), "depth", g.Depth())
		views = append(views, newResolveView(code, g))
	}

	w := cmd.OutOrStdout()
	var out any = views
	if len(views) == 1 {
		out = views[0]
	}
	if ok, err := writeStructured(w, c.Output.Format, out); ok {
		return err
	}
	renderResolveText(w, views)
	return nil
}
