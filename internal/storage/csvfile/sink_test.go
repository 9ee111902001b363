package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	csvparser "csvetl/internal/parser/csv"
	"csvetl/internal/storage"
	"csvetl/pkg/records"
)

func sample() *records.Table {
	t := records.NewTable("full_name", "age", "salary", "bonus")
	t.SetKind("age", records.KindInt)
	t.SetKind("salary", records.KindInt)
	t.SetKind("bonus", records.KindFloat)
	t.Append(records.Record{"full_name": "Alice", "age": int64(30), "salary": int64(5000), "bonus": 500.0})
	t.Append(records.Record{"full_name": "O'Neil, Pat", "age": int64(40)})
	return t
}

func TestReplace_WritesCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := Open(context.Background(), storage.Config{DSN: path})
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Replace(context.Background(), sample())
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "full_name,age,salary,bonus\nAlice,30,5000,500.0\n\"O'Neil, Pat\",40,,\n"
	if string(got) != want {
		t.Fatalf("file =\n%s\nwant\n%s", got, want)
	}
}

func TestReplace_HeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	s, _ := Open(context.Background(), storage.Config{DSN: path})
	if _, err := s.Replace(context.Background(), records.NewTable("a", "b")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "a,b\n" {
		t.Fatalf("file = %q", got)
	}
}

// TestReplace_FailureKeepsPreviousFile breaks the writer mid-table and checks
// that the existing file and directory are untouched.
func TestReplace_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	orig := writeRow
	t.Cleanup(func() { writeRow = orig })
	calls := 0
	writeRow = func(w *csv.Writer, rec []string) error {
		calls++
		if calls == 2 {
			return errors.New("disk full")
		}
		return w.Write(rec)
	}

	s, _ := Open(context.Background(), storage.Config{DSN: path})
	if _, err := s.Replace(context.Background(), sample()); err == nil {
		t.Fatal("expected error")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "old\n" {
		t.Fatalf("previous file changed: %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestReplace_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "out.csv")
	s, _ := Open(context.Background(), storage.Config{DSN: path})
	if _, err := s.Replace(context.Background(), sample()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file must not exist, stat err = %v", err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), storage.Config{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestReplace_ReadsBackSameRows(t *testing.T) {
	t.Parallel()

	oneCol := records.NewTable("city")
	oneCol.Append(records.Record{"city": nil})
	oneCol.Append(records.Record{"city": "Oslo"})
	oneCol.Append(records.Record{"city": nil})

	tests := []struct {
		name     string
		table    *records.Table
		wantFile string
	}{
		{"one column with nulls", oneCol, "city\n\"\"\nOslo\n\"\"\n"},
		{"several columns", sample(), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.csv")
			s, _ := Open(context.Background(), storage.Config{DSN: path})
			n, err := s.Replace(context.Background(), tc.table)
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if n != int64(tc.table.Len()) {
				t.Fatalf("n = %d, want %d", n, tc.table.Len())
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			back, err := csvparser.ReadTable(f, csvparser.Options{})
			if err != nil {
				t.Fatalf("ReadTable: %v", err)
			}
			if back.Len() != tc.table.Len() {
				t.Fatalf("read back %d rows, want %d", back.Len(), tc.table.Len())
			}
			if got, want := back.Names(), tc.table.Names(); !slices.Equal(got, want) {
				t.Fatalf("columns = %v, want %v", got, want)
			}
			if tc.wantFile != "" {
				raw, _ := os.ReadFile(path)
				if string(raw) != tc.wantFile {
					t.Fatalf("file = %q, want %q", raw, tc.wantFile)
				}
			}
		})
	}
}
