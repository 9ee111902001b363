// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import "csvetl/pkg/records"

// MapType maps a column kind to a Postgres type.
//
//	int    -> BIGINT
//	float  -> DOUBLE PRECISION
//	date   -> DATE
//	string -> TEXT
func MapType(k records.Kind) string {
	switch k {
	case records.KindInt:
		return "BIGINT"
	case records.KindFloat:
		return "DOUBLE PRECISION"
	case records.KindDate:
		return "DATE"
	default:
		return "TEXT"
	}
}
