// Package ddl contains SQLite-specific helpers for generating DDL.
package ddl

import "csvetl/pkg/records"

// MapType maps a column kind to a SQLite column type. SQLite types are
// affinities; dates are stored as ISO-8601 TEXT.
func MapType(k records.Kind) string {
	switch k {
	case records.KindInt:
		return "INTEGER"
	case records.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}
