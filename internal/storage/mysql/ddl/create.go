package ddl

import (
	"strings"

	gddl "csvetl/internal/ddl"
)

// Dialect renders MySQL DDL with backtick-quoted identifiers.
var Dialect = gddl.Dialect{Name: "mysql ddl", QuoteIdent: quoteIdent}

func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
