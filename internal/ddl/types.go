package ddl

// ColumnDef describes one column of a table definition. Name is unquoted;
// quoting happens when a Dialect renders it.
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TableDef holds the table name (dotted form for schema-qualified names) and
// its ordered columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
