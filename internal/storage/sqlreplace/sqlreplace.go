// Package sqlreplace implements storage.Repository.Replace for database/sql
// backends: drop the table, recreate it from the table's column kinds and
// insert every row, all inside one transaction. Backends without
// transactional DDL load a staging table and swap it in at the end.
package sqlreplace

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"csvetl/internal/ddl"
	"csvetl/internal/storage"
	"csvetl/pkg/records"
)

// DefaultBatchSize is the number of rows per multi-row INSERT.
const DefaultBatchSize = 500

// BulkFn writes rows into table inside tx using a backend bulk path.
type BulkFn func(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) (int64, error)

// Target describes one database/sql destination.
type Target struct {
	DB      *sql.DB
	Dialect ddl.Dialect
	MapType func(records.Kind) string

	// Placeholder renders the i-th (1-based) bind parameter; nil means "?".
	Placeholder func(i int) string
	// BatchSize caps rows per INSERT; zero means DefaultBatchSize.
	BatchSize int
	// MaxParams caps bind parameters per statement; zero means no cap.
	MaxParams int
	// Bulk replaces multi-row INSERTs when set.
	Bulk BulkFn
	// Swap, when set, switches to staged mode: rows are loaded into staging
	// and the returned statements move staging over table afterwards.
	Swap func(staging, table string) []string
}

// Replace makes cfg.Table hold exactly the rows of t.
func Replace(ctx context.Context, cfg storage.Config, tg Target, t *records.Table, rows [][]any) (int64, error) {
	if cfg.Table == "" {
		return 0, fmt.Errorf("%s: table name must not be empty", tg.Dialect.Name)
	}
	dest := cfg.Table
	if tg.Swap != nil {
		dest = cfg.Table + "__staging"
	}

	create, err := tg.Dialect.BuildCreateTableSQL(storage.TableDef(t, dest, tg.MapType))
	if err != nil {
		return 0, err
	}

	tx, err := tg.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	rollback := func() { _ = tx.Rollback() }

	for _, stmt := range []string{tg.Dialect.DropTableIfExists(dest), create} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			rollback()
			return 0, fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}

	n, err := tg.insert(ctx, cfg, tx, dest, t.Names(), rows)
	if err != nil {
		rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	if tg.Swap != nil {
		for _, stmt := range tg.Swap(dest, cfg.Table) {
			if _, err := tg.DB.ExecContext(ctx, stmt); err != nil {
				return 0, fmt.Errorf("swap %q: %w", stmt, err)
			}
		}
	}
	return n, nil
}

func (tg Target) insert(ctx context.Context, cfg storage.Config, tx *sql.Tx, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if tg.Bulk != nil {
		return tg.Bulk(ctx, tx, table, columns, rows)
	}

	size := tg.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	if tg.MaxParams > 0 {
		size = max(1, min(size, tg.MaxParams/len(columns)))
	}
	return storage.LoadBatches(ctx, cfg, columns, rows, size,
		func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
			query, args := tg.InsertSQL(table, columns, batch)
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, fmt.Errorf("insert: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return int64(len(batch)), nil
			}
			return n, nil
		})
}

// InsertSQL renders one multi-row INSERT for batch and its flattened args.
func (tg Target) InsertSQL(table string, columns []string, batch [][]any) (string, []any) {
	ph := tg.Placeholder
	if ph == nil {
		ph = func(int) string { return "?" }
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ",
		tg.Dialect.QuoteFQN(table), strings.Join(tg.Dialect.QuoteAll(columns), ", "))

	args := make([]any, 0, len(batch)*len(columns))
	for i, row := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, row[j])
			sb.WriteString(ph(len(args)))
		}
		sb.WriteByte(')')
	}
	return sb.String(), args
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
