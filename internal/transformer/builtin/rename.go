package builtin

import "csvetl/pkg/records"

// Rename moves column From to To, replacing any existing To. A missing From
// is a no-op.
type Rename struct {
	From, To string
}

// Apply implements transformer.Transformer.
func (r Rename) Apply(t *records.Table) int {
	_ = t.RenameColumn(r.From, r.To)
	return 0
}
