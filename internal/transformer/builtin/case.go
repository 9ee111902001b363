package builtin

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"csvetl/pkg/records"
)

// Upper writes an uppercased copy of Field into Target. Non-text values
// become null in the copy.
type Upper struct {
	Field  string
	Target string
}

// Apply implements transformer.Transformer.
func (u Upper) Apply(t *records.Table) int {
	c := cases.Upper(language.Und)
	t.AddColumn(u.Target, records.KindString)
	for _, r := range t.Rows {
		if s, ok := r[u.Field].(string); ok {
			r[u.Target] = c.String(s)
		}
	}
	return 0
}

// Title title-cases Field in place. Nulls stay null; numbers are rendered as
// text first.
type Title struct {
	Field string
}

// Apply implements transformer.Transformer.
func (ti Title) Apply(t *records.Table) int {
	c := cases.Title(language.Und)
	for _, r := range t.Rows {
		v := r[ti.Field]
		if v == nil {
			continue
		}
		r[ti.Field] = c.String(records.Format(v))
	}
	t.SetKind(ti.Field, records.KindString)
	return 0
}
