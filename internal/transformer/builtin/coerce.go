package builtin

import (
	"math"
	"strconv"
	"strings"

	"csvetl/pkg/records"
)

// Coerce converts columns to the requested kinds. Supported targets are
// records.KindInt and records.KindFloat (numeric coercion) and
// records.KindString. A value that cannot be converted becomes null; Coerce
// never fails and never drops rows.
//
// Numeric coercion keeps integral text as int64 and everything else numeric
// as float64; the column kind is then derived from what survived.
type Coerce struct {
	Types map[string]records.Kind
}

// Apply implements transformer.Transformer.
func (c Coerce) Apply(t *records.Table) int {
	for field, kind := range c.Types {
		if !t.Has(field) {
			continue
		}
		switch kind {
		case records.KindInt, records.KindFloat:
			for _, r := range t.Rows {
				r[field] = ToNumber(r[field])
			}
			t.SetKind(field, records.KindFloat)
			t.InferKind(field)
		case records.KindString:
			for _, r := range t.Rows {
				if v := r[field]; v != nil {
					r[field] = records.Format(v)
				}
			}
			t.SetKind(field, records.KindString)
		}
	}
	return 0
}

// ToNumber is the best-effort numeric conversion used by Coerce: int64 and
// float64 pass through, text is parsed, anything else (or NaN) is nil.
func ToNumber(v any) any {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return nil
		}
		return f
	default:
		return nil
	}
}
