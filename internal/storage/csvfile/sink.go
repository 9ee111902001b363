// Package csvfile implements the "csv" storage kind: the table is written as
// a header line plus one line per row. The file is staged next to the target
// and renamed over it on success, so a failed write leaves any previous file
// intact.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"csvetl/internal/storage"
	"csvetl/pkg/records"
)

// Sink writes tables to one CSV file.
type Sink struct {
	path  string
	comma rune
}

// Open returns a Sink for the file at cfg.DSN.
func Open(_ context.Context, cfg storage.Config) (*Sink, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("csvfile: path must not be empty")
	}
	return &Sink{path: cfg.DSN, comma: ','}, nil
}

// Replace implements storage.Repository.
func (s *Sink) Replace(ctx context.Context, t *records.Table) (int64, error) {
	pf, err := renameio.NewPendingFile(s.path,
		renameio.WithTempDir(filepath.Dir(s.path)),
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return 0, fmt.Errorf("csvfile: %w", err)
	}
	defer func() { _ = pf.Cleanup() }()

	bw := bufio.NewWriter(pf)
	n, err := write(ctx, bw, s.comma, t)
	if err != nil {
		return 0, fmt.Errorf("csvfile: write %s: %w", s.path, err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("csvfile: flush %s: %w", s.path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("csvfile: replace %s: %w", s.path, err)
	}
	return n, nil
}

// Close implements storage.Repository.
func (s *Sink) Close() error { return nil }

// writeRow is a test hook around csv.Writer.Write.
var writeRow = func(w *csv.Writer, rec []string) error { return w.Write(rec) }

func write(ctx context.Context, bw *bufio.Writer, comma rune, t *records.Table) (int64, error) {
	w := csv.NewWriter(bw)
	w.Comma = comma

	cols := t.Names()
	if err := writeRow(w, cols); err != nil {
		return 0, err
	}
	rec := make([]string, len(cols))
	var n int64
	for _, r := range t.Rows {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		for i, c := range cols {
			rec[i] = records.Format(r[c])
		}
		if len(rec) == 1 && rec[0] == "" {
			// A lone empty field would be a blank line, which readers skip.
			w.Flush()
			if err := w.Error(); err != nil {
				return n, err
			}
			if _, err := bw.WriteString(`""` + "\n"); err != nil {
				return n, err
			}
			n++
			continue
		}
		if err := writeRow(w, rec); err != nil {
			return n, err
		}
		n++
	}
	w.Flush()
	return n, w.Error()
}

func init() {
	storage.Register("csv", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg)
	})
}
