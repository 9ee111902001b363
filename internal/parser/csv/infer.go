package csv

import (
	"strconv"
	"strings"

	"csvetl/pkg/records"
)

// inferKinds returns one kind per column. A column is int when every non-null
// cell is a base-10 int64, float when every non-null cell parses as a float,
// and string otherwise (including columns with no values at all).
func inferKinds(n int, rows [][]string, isNull func(string) bool) []records.Kind {
	kinds := make([]records.Kind, n)
	for c := 0; c < n; c++ {
		kinds[c] = inferColumn(rows, c, isNull)
	}
	return kinds
}

func inferColumn(rows [][]string, c int, isNull func(string) bool) records.Kind {
	seen := false
	allInt, allFloat := true, true
	for _, r := range rows {
		v := r[c]
		if isNull(v) {
			continue
		}
		seen = true
		if allInt && !isInt(v) {
			allInt = false
		}
		if !isFloat(v) {
			allFloat = false
			break
		}
	}
	switch {
	case !seen:
		return records.KindString
	case allInt && allFloat:
		return records.KindInt
	case allFloat:
		return records.KindFloat
	default:
		return records.KindString
	}
}

// typedValue converts a raw cell to the column's kind. Empty cells are null.
func typedValue(s string, k records.Kind) any {
	if s == "" {
		return nil
	}
	switch k {
	case records.KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i
		}
	case records.KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return s
}

// isInt requires a signed base-10 integer that fits in int64.
func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// isFloat accepts decimal or scientific notation.
func isFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
