package ddl

import (
	"strings"

	gddl "csvetl/internal/ddl"
)

// Dialect renders T-SQL DDL with bracket-quoted identifiers.
var Dialect = gddl.Dialect{Name: "mssql ddl", QuoteIdent: quoteIdent}

// quoteIdent quotes an identifier with brackets, escaping closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}
