package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a table writer in the style every command uses.
func newTable(header ...any) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row(header))
	return w
}

// wrapColumn limits column n (1-based) to width characters.
func wrapColumn(w table.Writer, n, width int) {
	w.SetColumnConfigs([]table.ColumnConfig{{
		Number:           n,
		WidthMax:         width,
		WidthMaxEnforcer: text.WrapSoft,
	}})
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
