// Package all wires every built-in storage backend into the storage factory.
// Import it for side effects:
//
//	import _ "csvetl/internal/storage/all"
//
// Binaries that need only a subset of backends can import those packages
// directly instead.
package all

import (
	_ "csvetl/internal/storage/csvfile"
	_ "csvetl/internal/storage/mongo"
	_ "csvetl/internal/storage/mssql"
	_ "csvetl/internal/storage/mysql"
	_ "csvetl/internal/storage/postgres"
	_ "csvetl/internal/storage/sqlite"
)
