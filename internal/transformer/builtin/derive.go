package builtin

import "csvetl/pkg/records"

// Scale adds (or overwrites) Target as Source × Factor. A null or
// non-numeric source yields a null target.
type Scale struct {
	Source string
	Target string
	Factor float64
}

// Apply implements transformer.Transformer.
func (s Scale) Apply(t *records.Table) int {
	t.AddColumn(s.Target, records.KindFloat)
	for _, r := range t.Rows {
		if n, ok := records.Number(r[s.Source]); ok {
			r[s.Target] = n * s.Factor
		}
	}
	return 0
}
