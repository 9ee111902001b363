// Package postgres implements a Postgres repository using pgx v5. Replace
// drops and recreates the table and streams the rows in with COPY, all in one
// transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"csvetl/internal/storage"
	pgddl "csvetl/internal/storage/postgres/ddl"
	"csvetl/pkg/records"
)

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// Open connects to cfg.DSN and verifies the connection.
func Open(ctx context.Context, cfg storage.Config) (*Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, nil
}

// Replace implements storage.Repository.
func (r *Repository) Replace(ctx context.Context, t *records.Table) (int64, error) {
	if r.cfg.Table == "" {
		return 0, fmt.Errorf("postgres: table name must not be empty")
	}
	create, err := pgddl.Dialect.BuildCreateTableSQL(storage.TableDef(t, r.cfg.Table, pgddl.MapType))
	if err != nil {
		return 0, err
	}
	cols, rows := storage.Values(t)
	storage.DatesAsTime(t, rows)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range []string{pgddl.Dialect.DropTableIfExists(r.cfg.Table), create} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return 0, fmt.Errorf("postgres: exec: %w", describe(err))
		}
	}

	n, err := tx.CopyFrom(ctx, splitFQN(r.cfg.Table), cols, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("postgres: copy: %w", describe(err))
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return n, nil
}

// Close implements storage.Repository.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// describe surfaces the server-side detail of a Postgres error when present.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return fmt.Errorf("%w (%s)", err, pgErr.Detail)
	}
	return err
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			id = append(id, p)
		}
	}
	return id
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg)
	})
}
