package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gics/internal/config"
	"gics/internal/definitions"
	"gics/pkg/gics"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Text output styles. lipgloss drops the colors when stdout is not a
// terminal, so piped output stays plain.
var (
	codeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
	invalidStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	validStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
)

// levelView is one resolved level.
type levelView struct {
	Level       int    `json:"level" yaml:"level"`
	LevelName   string `json:"level_name" yaml:"level_name"`
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// resolveView is the result of resolving one input.
type resolveView struct {
	Input   string      `json:"input" yaml:"input"`
	Version string      `json:"version" yaml:"version"`
	Valid   bool        `json:"valid" yaml:"valid"`
	Code    string      `json:"code,omitempty" yaml:"code,omitempty"`
	Levels  []levelView `json:"levels" yaml:"levels"`
}

func newResolveView(input string, g *gics.GICS) resolveView {
	v := resolveView{
		Input:   input,
		Version: g.Version(),
		Valid:   g.IsValid(),
		Code:    g.Code(),
		Levels:  make([]levelView, 0, g.Depth()),
	}
	for i, d := range g.Path() {
		v.Levels = append(v.Levels, levelView{
			Level:       i + 1,
			LevelName:   definitions.LevelName(i + 1),
			Code:        d.Code,
			Name:        d.Name,
			Description: d.Description,
		})
	}
	return v
}

// childrenView lists the entries one level below Parent.
type childrenView struct {
	Version  string                   `json:"version" yaml:"version"`
	Parent   string                   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []definitions.Descriptor `json:"children" yaml:"children"`
}

// relationView holds every predicate between A and B.
type relationView struct {
	Version           string `json:"version" yaml:"version"`
	A                 string `json:"a" yaml:"a"`
	B                 string `json:"b" yaml:"b"`
	AValid            bool   `json:"a_valid" yaml:"a_valid"`
	BValid            bool   `json:"b_valid" yaml:"b_valid"`
	Same              bool   `json:"same" yaml:"same"`
	Within            bool   `json:"a_within_b" yaml:"a_within_b"`
	ImmediateWithin   bool   `json:"a_immediately_within_b" yaml:"a_immediately_within_b"`
	Contains          bool   `json:"a_contains_b" yaml:"a_contains_b"`
	ContainsImmediate bool   `json:"a_contains_b_immediately" yaml:"a_contains_b_immediately"`
}

// treeNode is one node of a rendered subtree.
type treeNode struct {
	Code        string     `json:"code" yaml:"code"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Children    []treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// versionView summarizes one definition table.
type versionView struct {
	Version        string `json:"version" yaml:"version"`
	Default        bool   `json:"default" yaml:"default"`
	Sectors        int    `json:"sectors" yaml:"sectors"`
	IndustryGroups int    `json:"industry_groups" yaml:"industry_groups"`
	Industries     int    `json:"industries" yaml:"industries"`
	SubIndustries  int    `json:"sub_industries" yaml:"sub_industries"`
}

// writeStructured renders v as JSON or YAML. It reports false for the text
// format so callers fall through to their own text rendering.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func renderResolveText(w io.Writer, views []resolveView) {
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !v.Valid {
			fmt.Fprintf(w, "%s %s %s\n", codeStyle.Render(v.Input), invalidStyle.Render("invalid"), mutedStyle.Render("("+v.Version+")"))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", codeStyle.Render(v.Code), validStyle.Render("valid"), mutedStyle.Render("("+v.Version+")"))
		for _, l := range v.Levels {
			fmt.Fprintf(w, "  %s %s %s\n",
				labelStyle.Render(fmt.Sprintf("%-15s", l.LevelName)),
				codeStyle.Render(fmt.Sprintf("%-8s", l.Code)),
				nameStyle.Render(l.Name))
		}
		if last := v.Levels[len(v.Levels)-1]; last.Description != "" {
			fmt.Fprintf(w, "  %s\n", mutedStyle.Render(last.Description))
		}
	}
}

func renderDescriptorLine(w io.Writer, indent string, d definitions.Descriptor) {
	fmt.Fprintf(w, "%s%s %s\n", indent, codeStyle.Render(fmt.Sprintf("%-8s", d.Code)), nameStyle.Render(d.Name))
}

func renderTreeText(w io.Writer, nodes []treeNode, depth, width int) {
	indent := strings.Repeat(" ", depth*width)
	for _, n := range nodes {
		renderDescriptorLine(w, indent, definitions.Descriptor{Code: n.Code, Name: n.Name})
		renderTreeText(w, n.Children, depth+1, width)
	}
}
