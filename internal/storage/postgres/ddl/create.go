package ddl

import gddl "csvetl/internal/ddl"

// Dialect renders Postgres DDL with double-quoted identifiers.
var Dialect = gddl.Dialect{Name: "postgres ddl", QuoteIdent: gddl.DoubleQuote}
