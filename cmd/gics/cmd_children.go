package main

import (
	"fmt"

	"gics/pkg/gics"

	"github.com/spf13/cobra"
)

var childrenCmd = &cobra.Command{
	Use:   "children [code]",
	Short: "List the codes one level below a code",
	Long: `List the codes one level below the given code, ordered by code. Without a
code, or with a code that is not part of the revision, every sector is
listed. A sub-industry has no children.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChildren,
}

func runChildren(cmd *cobra.Command, args []string) error {
	c := activeConfig()

	code := ""
	if len(args) == 1 {
		code = args[0]
	}
	g, err := gics.NewWithVersion(code, c.Definitions.Version)
	if err != nil {
		return err
	}

	view := childrenView{
		Version:  g.Version(),
		Parent:   g.Code(),
		Children: g.Children(),
	}
	cliLogger().Debugw("listing children", "input", code, "parent", view.Parent, "count", len(view.Children))

	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, c.Output.Format, view); ok {
		return err
	}

	if code != "" && !g.IsValid() {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s is not a %s code, listing sectors", code, view.Version)))
	}
	if len(view.Children) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no children"))
		return nil
	}
	for _, d := range view.Children {
		renderDescriptorLine(w, "", d)
	}
	return nil
}
