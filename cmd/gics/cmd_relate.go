package main

import (
	"fmt"

	"gics/pkg/gics"

	"github.com/spf13/cobra"
)

var relateCmd = &cobra.Command{
	Use:   "relate <a> <b>",
	Short: "Show how two codes relate in the hierarchy",
	Args:  cobra.ExactArgs(2),
	RunE:  runRelate,
}

func runRelate(cmd *cobra.Command, args []string) error {
	c := activeConfig()

	a, err := gics.NewWithVersion(args[0], c.Definitions.Version)
	if err != nil {
		return err
	}
	b, err := gics.NewWithVersion(args[1], c.Definitions.Version)
	if err != nil {
		return err
	}

	view := relationView{
		Version:           a.Version(),
		A:                 args[0],
		B:                 args[1],
		AValid:            a.IsValid(),
		BValid:            b.IsValid(),
		Same:              a.IsSame(b),
		Within:            a.IsWithin(b),
		ImmediateWithin:   a.IsImmediateWithin(b),
		Contains:          a.Contains(b),
		ContainsImmediate: a.ContainsImmediate(b),
	}

	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, c.Output.Format, view); ok {
		return err
	}

	rows := []struct {
		label string
		value bool
	}{
		{"a valid", view.AValid},
		{"b valid", view.BValid},
		{"same", view.Same},
		{"a within b", view.Within},
		{"a immediately within b", view.ImmediateWithin},
		{"a contains b", view.Contains},
		{"a contains b immediately", view.ContainsImmediate},
	}
	fmt.Fprintf(w, "%s %s %s %s\n", codeStyle.Render(view.A), mutedStyle.Render("vs"), codeStyle.Render(view.B), mutedStyle.Render("("+view.Version+")"))
	for _, r := range rows {
		style := invalidStyle
		if r.value {
			style = validStyle
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-25s", r.label)), style.Render(fmt.Sprintf("%t", r.value)))
	}
	return nil
}
