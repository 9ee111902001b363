// Package mssql implements a Microsoft SQL Server repository. Replace drops
// and recreates the table and loads the rows through the go-mssqldb bulk copy
// API, all inside one transaction.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"csvetl/internal/storage"
	msddl "csvetl/internal/storage/mssql/ddl"
	"csvetl/internal/storage/sqlreplace"
	"csvetl/pkg/records"
)

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// Open validates the DSN, connects and pings the server.
func Open(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, nil
}

// Replace implements storage.Repository.
func (r *Repository) Replace(ctx context.Context, t *records.Table) (int64, error) {
	_, rows := storage.Values(t)
	storage.DatesAsTime(t, rows)
	n, err := sqlreplace.Replace(ctx, r.cfg, sqlreplace.Target{
		DB:      r.db,
		Dialect: msddl.Dialect,
		MapType: msddl.MapType,
		Bulk:    bulkCopy,
	}, t, rows)
	if err != nil {
		return 0, fmt.Errorf("mssql: %w", err)
	}
	return n, nil
}

// Close implements storage.Repository.
func (r *Repository) Close() error { return r.db.Close() }

// bulkCopy streams rows into table with a prepared CopyIn statement.
func bulkCopy(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(msddl.Dialect.QuoteFQN(table), mssql.BulkOptions{}, columns...))
	if err != nil {
		return 0, fmt.Errorf("prepare bulk: %w", err)
	}
	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i]...); err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("bulk row %d: %w", i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if cerr := stmt.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("bulk finalize: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg)
	})
}
