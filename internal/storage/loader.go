package storage

import (
	"context"
	"fmt"
	"time"
)

// CopyFn inserts one batch of rows aligned to columns and returns how many
// rows it wrote.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches splits rows into batches of batchSize and calls copyFn for each.
// It returns the running total and the first error. Progress is reported to
// cfg.Log after every successful batch when a logger is configured.
func LoadBatches(
	ctx context.Context,
	cfg Config,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total   int64
		batches int64
		start   = time.Now()
	)
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := min(lo+batchSize, len(rows))
		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			return total, fmt.Errorf("batch #%d: %w", batches+1, err)
		}
		batches++
		if cfg.Log != nil {
			cfg.Log.Printf("batch #%d: inserted=%d total_inserted=%d elapsed=%s",
				batches, n, total, time.Since(start).Truncate(time.Millisecond))
		}
	}
	return total, nil
}
