package storage

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func intRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{int64(i), "x"}
	}
	return rows
}

// TestLoadBatches_Basic verifies rows are split 3+3+1 and the total is the
// sum of the copy results.
func TestLoadBatches_Basic(t *testing.T) {
	t.Parallel()

	var sizes []int
	copyFn := func(_ context.Context, _ []string, rows [][]any) (int64, error) {
		sizes = append(sizes, len(rows))
		return int64(len(rows)), nil
	}

	var buf bytes.Buffer
	cfg := Config{Log: log.New(&buf, "", 0)}
	total, err := LoadBatches(context.Background(), cfg, []string{"c1", "c2"}, intRows(7), 3, copyFn)
	if err != nil {
		t.Fatalf("LoadBatches error: %v", err)
	}
	if total != 7 {
		t.Fatalf("total rows %d, want 7", total)
	}
	if len(sizes) != 3 || sizes[0] != 3 || sizes[2] != 1 {
		t.Fatalf("batch sizes = %v", sizes)
	}
	if got := strings.Count(buf.String(), "batch #"); got != 3 {
		t.Fatalf("progress lines = %d, want 3", got)
	}
}

// TestLoadBatches_ErrorPropagation ensures the first copy error stops the load.
func TestLoadBatches_ErrorPropagation(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("copy failed")
	calls := 0
	copyFn := func(_ context.Context, _ []string, rows [][]any) (int64, error) {
		calls++
		if calls == 2 {
			return 0, wantErr
		}
		return int64(len(rows)), nil
	}

	total, err := LoadBatches(context.Background(), Config{}, []string{"c"}, intRows(5), 2, copyFn)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if total != 2 || calls != 2 {
		t.Fatalf("total=%d calls=%d, want 2 and 2", total, calls)
	}
}

func TestLoadBatches_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	copyFn := func(context.Context, []string, [][]any) (int64, error) {
		t.Fatal("copyFn must not run after cancel")
		return 0, nil
	}
	if _, err := LoadBatches(ctx, Config{}, []string{"c"}, intRows(1), 1, copyFn); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadBatches_InvalidArgs(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, []string, [][]any) (int64, error) { return 0, nil }
	if _, err := LoadBatches(context.Background(), Config{}, nil, nil, 0, noop); err == nil {
		t.Fatal("expected error for batchSize 0")
	}
	if _, err := LoadBatches(context.Background(), Config{}, nil, nil, 1, nil); err == nil {
		t.Fatal("expected error for nil copyFn")
	}
}

// TestLoadBatches_Empty checks that no rows means no calls.
func TestLoadBatches_Empty(t *testing.T) {
	t.Parallel()

	copyFn := func(context.Context, []string, [][]any) (int64, error) {
		t.Fatal("copyFn called for empty input")
		return 0, nil
	}
	total, err := LoadBatches(context.Background(), Config{}, []string{"c"}, nil, 10, copyFn)
	if err != nil || total != 0 {
		t.Fatalf("total=%d err=%v", total, err)
	}
}
