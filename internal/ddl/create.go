// Package ddl defines a small, backend-agnostic model for SQL DDL and renders
// it for a given identifier-quoting dialect. Backend packages under
// internal/storage supply the dialect and the type mapping.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect renders DDL for one SQL flavour.
type Dialect struct {
	// Name prefixes error messages, e.g. "sqlite ddl".
	Name string
	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(string) string
}

// QuoteFQN quotes a possibly schema-qualified name segment by segment.
// Empty segments are ignored.
func (d Dialect) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, d.QuoteIdent(p))
	}
	return strings.Join(out, ".")
}

// QuoteAll quotes each name.
func (d Dialect) QuoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = d.QuoteIdent(n)
	}
	return out
}

// DropTableIfExists returns a DROP TABLE IF EXISTS statement for fqn.
func (d Dialect) DropTableIfExists(fqn string) string {
	return "DROP TABLE IF EXISTS " + d.QuoteFQN(fqn)
}

// BuildCreateTableSQL renders a CREATE TABLE statement:
//
//	CREATE TABLE "t" (
//	  "col1" TYPE [NOT NULL],
//	  "col2" TYPE
//	)
//
// The table name must be non-empty and every column needs a name and a type.
func (d Dialect) BuildCreateTableSQL(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s: table FQN must not be empty", d.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s: at least one column is required", d.Name)
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("%s: column with empty name in table %s", d.Name, fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("%s: column %s missing SQLType", d.Name, c.Name)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n)",
		d.QuoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// DoubleQuote quotes an identifier ANSI-style, doubling embedded quotes.
func DoubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
