package builtin

import "csvetl/pkg/records"

// Require removes every row holding a null in any of Fields. An empty Fields
// list means every column of the table.
type Require struct {
	Fields []string
}

// Apply implements transformer.Transformer.
func (r Require) Apply(t *records.Table) int {
	fields := r.Fields
	if len(fields) == 0 {
		fields = t.Names()
	}
	return t.Filter(func(rec records.Record) bool {
		for _, f := range fields {
			if rec[f] == nil {
				return false
			}
		}
		return true
	})
}
