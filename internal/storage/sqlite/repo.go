// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql and the pure-Go modernc.org/sqlite driver. Replace runs the
// drop, create and inserts in a single transaction, so a failed load leaves
// the previous table untouched.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"csvetl/internal/storage"
	sqliteddl "csvetl/internal/storage/sqlite/ddl"
	"csvetl/internal/storage/sqlreplace"
	"csvetl/pkg/records"
)

// maxParams stays under SQLITE_MAX_VARIABLE_NUMBER.
const maxParams = 32766

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// Open opens a SQLite database. dsn is a file path or a "file:" URI; the file
// is created when missing.
func Open(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps ":memory:" databases coherent across calls.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, nil
}

// Replace implements storage.Repository.
func (r *Repository) Replace(ctx context.Context, t *records.Table) (int64, error) {
	_, rows := storage.Values(t)
	n, err := sqlreplace.Replace(ctx, r.cfg, sqlreplace.Target{
		DB:        r.db,
		Dialect:   sqliteddl.Dialect,
		MapType:   sqliteddl.MapType,
		MaxParams: maxParams,
	}, t, rows)
	if err != nil {
		return 0, fmt.Errorf("sqlite: %w", err)
	}
	return n, nil
}

// DB exposes the underlying handle.
func (r *Repository) DB() *sql.DB { return r.db }

// Close implements storage.Repository.
func (r *Repository) Close() error { return r.db.Close() }

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg)
	})
}
