// Package ui renders terminal output for the oopz CLI: the class
// hierarchy tree and the interactive pipeline progress view.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gdzig/oopz/internal/classes"
)

// TreeOpts configure hierarchy rendering.
type TreeOpts struct {
	Color    bool
	ShowDocs bool
	Width    int // clip doc columns, 0 means unlimited
}

type treeStyles struct {
	name lipgloss.Style
	doc  lipgloss.Style
}

func newTreeStyles(colored bool) treeStyles {
	if !colored {
		return treeStyles{name: lipgloss.NewStyle(), doc: lipgloss.NewStyle()}
	}
	return treeStyles{
		name: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		doc:  lipgloss.NewStyle().Faint(true),
	}
}

// RenderTree draws the class hierarchy as a box-drawing tree, roots
// first, children in the given order. The order must be parent-first;
// ids the table does not know are skipped.
func RenderTree(table *classes.Table, order []classes.ClassID, opts TreeOpts) string {
	children := make(map[classes.ClassID][]classes.ClassID, len(order))
	var roots []classes.ClassID
	for _, id := range order {
		row, ok := table.Lookup(id)
		if !ok {
			continue
		}
		if row.Base == classes.NoClassID {
			roots = append(roots, id)
		} else {
			children[row.Base] = append(children[row.Base], id)
		}
	}

	st := newTreeStyles(opts.Color)
	var b strings.Builder
	for _, root := range roots {
		renderNode(&b, table, children, root, "", "", st, opts)
	}
	return b.String()
}

func renderNode(b *strings.Builder, table *classes.Table, children map[classes.ClassID][]classes.ClassID, id classes.ClassID, prefix, branch string, st treeStyles, opts TreeOpts) {
	row, ok := table.Lookup(id)
	if !ok {
		return
	}
	line := prefix + branch + st.name.Render(row.Name)
	if opts.ShowDocs && row.Doc != "" {
		line += "  " + st.doc.Render(docLine(row.Doc, opts.Width))
	}
	b.WriteString(line)
	b.WriteByte('\n')

	childPrefix := prefix
	switch branch {
	case "├── ":
		childPrefix += "│   "
	case "└── ":
		childPrefix += "    "
	}
	kids := children[id]
	for i, kid := range kids {
		connector := "├── "
		if i == len(kids)-1 {
			connector = "└── "
		}
		renderNode(b, table, children, kid, childPrefix, connector, st, opts)
	}
}

func docLine(doc string, width int) string {
	line, _, _ := strings.Cut(doc, "\n")
	line = strings.TrimSpace(line)
	if width > 0 {
		line = truncate(line, width)
	}
	return line
}
