package builtin

import "csvetl/pkg/records"

// KeepAbove keeps rows whose Field is numeric and strictly greater than
// Threshold. Nulls and non-numeric values never compare greater, so those
// rows are removed.
type KeepAbove struct {
	Field     string
	Threshold float64
}

// Apply implements transformer.Transformer.
func (k KeepAbove) Apply(t *records.Table) int {
	removed := t.Filter(func(r records.Record) bool {
		n, ok := records.Number(r[k.Field])
		return ok && n > k.Threshold
	})
	t.InferKind(k.Field)
	return removed
}
