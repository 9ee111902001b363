// Package builtin contains the column-level rules the pipelines are built from.
package builtin

import (
	"strings"

	"csvetl/pkg/records"
)

// HeaderMode selects how NormalizeHeaders rewrites column names.
type HeaderMode int

const (
	// HeaderLower trims and lowercases.
	HeaderLower HeaderMode = iota + 1
	// HeaderSnake trims, lowercases and turns spaces into underscores.
	HeaderSnake
)

// NormalizeHeaders rewrites column names. When several columns collapse to
// the same name the last of them wins.
type NormalizeHeaders struct {
	Mode HeaderMode
}

// Apply implements transformer.Transformer. It never drops rows.
func (n NormalizeHeaders) Apply(t *records.Table) int {
	old := t.Names()
	renamed := make([]string, len(old))
	last := make(map[string]int, len(old))
	for i, name := range old {
		renamed[i] = n.normalize(name)
		last[renamed[i]] = i
	}

	cols := make([]records.Column, 0, len(last))
	for i, c := range t.Columns {
		if last[renamed[i]] == i {
			cols = append(cols, records.Column{Name: renamed[i], Kind: c.Kind})
		}
	}
	for ri, r := range t.Rows {
		row := make(records.Record, len(cols))
		for i, name := range old {
			if last[renamed[i]] == i {
				row[renamed[i]] = r[name]
			}
		}
		t.Rows[ri] = row
	}
	t.Columns = cols
	return 0
}

func (n NormalizeHeaders) normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if n.Mode == HeaderSnake {
		s = strings.ReplaceAll(s, " ", "_")
	}
	return s
}
