// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import "csvetl/pkg/records"

// MapType maps a column kind to a SQL Server type. Text falls back to
// NVARCHAR(MAX).
func MapType(k records.Kind) string {
	switch k {
	case records.KindInt:
		return "BIGINT"
	case records.KindFloat:
		return "FLOAT"
	case records.KindDate:
		return "DATE"
	default:
		return "NVARCHAR(MAX)"
	}
}
