package ddl

import gddl "csvetl/internal/ddl"

// Dialect renders SQLite DDL with double-quoted identifiers.
var Dialect = gddl.Dialect{Name: "sqlite ddl", QuoteIdent: gddl.DoubleQuote}
