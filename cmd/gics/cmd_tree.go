package main

import (
	"gics/pkg/gics"

	"github.com/spf13/cobra"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [code]",
	Short: "Print the hierarchy below a code",
	Long: `Print the subtree rooted at the given code. Without a code, or with a code
that is not part of the revision, the whole revision is printed starting
from its sectors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	c := activeConfig()

	code := ""
	if len(args) == 1 {
		code = args[0]
	}
	root, err := gics.NewWithVersion(code, c.Definitions.Version)
	if err != nil {
		return err
	}

	depth := treeDepth
	if depth <= 0 {
		depth = -1
	}

	var nodes []treeNode
	if root.IsValid() {
		d, _ := root.Level(root.Depth())
		nodes = []treeNode{buildTree(root, d, depth)}
	} else {
		// The sectors sit one level below an invalid root.
		nodes = buildChildren(root, depth)
	}
	cliLogger().Debugw("rendering tree", "input", code, "roots", len(nodes), "depth", treeDepth)

	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, c.Output.Format, nodes); ok {
		return err
	}
	renderTreeText(w, nodes, 0, c.Output.Indent)
	return nil
}

// buildTree returns the node for g with up to depth levels below it. A
// negative depth descends to the sub-industries.
func buildTree(g *gics.GICS, d gics.Descriptor, depth int) treeNode {
	return treeNode{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Children:    buildChildren(g, depth),
	}
}

func buildChildren(g *gics.GICS, depth int) []treeNode {
	if depth == 0 {
		return nil
	}
	var nodes []treeNode
	for _, child := range g.Children() {
		cg, err := gics.NewWithVersion(child.Code, g.Version())
		if err != nil {
			continue
		}
		nodes = append(nodes, buildTree(cg, child, depth-1))
	}
	return nodes
}
