package storage

import (
	"strings"
	"time"

	"csvetl/internal/ddl"
	"csvetl/pkg/records"
)

// KindFor maps a destination string to a backend kind by URL scheme. Anything
// without a recognized scheme is treated as a SQLite database file.
func KindFor(dest string) string {
	d := strings.ToLower(strings.TrimSpace(dest))
	switch {
	case strings.HasPrefix(d, "postgres://"), strings.HasPrefix(d, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(d, "sqlserver://"):
		return "mssql"
	case strings.HasPrefix(d, "mysql://"):
		return "mysql"
	case strings.HasPrefix(d, "mongodb://"), strings.HasPrefix(d, "mongodb+srv://"):
		return "mongo"
	default:
		return "sqlite"
	}
}

// Values flattens t into its column names and row values, both in column
// order.
func Values(t *records.Table) ([]string, [][]any) {
	cols := t.Names()
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = r[c]
		}
		rows[i] = row
	}
	return cols, rows
}

// DatesAsTime rewrites the cells of date columns from "YYYY-MM-DD" text to
// time.Time in place, for drivers that bind DATE columns from time values.
// Cells that do not parse are left as they are.
func DatesAsTime(t *records.Table, rows [][]any) {
	for j, c := range t.Columns {
		if c.Kind != records.KindDate {
			continue
		}
		for _, row := range rows {
			s, ok := row[j].(string)
			if !ok {
				continue
			}
			if d, err := time.Parse("2006-01-02", s); err == nil {
				row[j] = d
			}
		}
	}
}

// TableDef derives a table definition for t named table, typing each column
// with mapType. Every column is nullable.
func TableDef(t *records.Table, table string, mapType func(records.Kind) string) ddl.TableDef {
	def := ddl.TableDef{FQN: table, Columns: make([]ddl.ColumnDef, len(t.Columns))}
	for i, c := range t.Columns {
		def.Columns[i] = ddl.ColumnDef{Name: c.Name, SQLType: mapType(c.Kind), Nullable: true}
	}
	return def
}
