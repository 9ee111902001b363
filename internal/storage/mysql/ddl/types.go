// Package ddl contains MySQL-specific helpers for generating DDL.
package ddl

import "csvetl/pkg/records"

// MapType maps a column kind to a MySQL type.
func MapType(k records.Kind) string {
	switch k {
	case records.KindInt:
		return "BIGINT"
	case records.KindFloat:
		return "DOUBLE"
	case records.KindDate:
		return "DATE"
	default:
		return "LONGTEXT"
	}
}
