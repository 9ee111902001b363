package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"

	"csvetl/pkg/records"
)

func TestParse_HeaderKindsAndNulls(t *testing.T) {
	t.Parallel()

	in := "Name,Age,Salary,Score\n" +
		"Alice,30,5000,1.5\n" +
		"Bob,20,,2\n" +
		"Carl,abc,4000,\n"

	tb, err := ReadTable(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if got, want := tb.Names(), []string{"Name", "Age", "Salary", "Score"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	wantKinds := map[string]records.Kind{
		"Name":   records.KindString,
		"Age":    records.KindString, // "abc" makes the column textual
		"Salary": records.KindInt,
		"Score":  records.KindFloat,
	}
	for name, want := range wantKinds {
		if got := tb.Kind(name); got != want {
			t.Fatalf("Kind(%s) = %s, want %s", name, got, want)
		}
	}

	if tb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tb.Len())
	}
	if got := tb.Rows[0]["Salary"]; got != int64(5000) {
		t.Fatalf("Salary[0] = %#v, want int64(5000)", got)
	}
	if got := tb.Rows[1]["Score"]; got != 2.0 {
		t.Fatalf("Score[1] = %#v, want 2.0", got)
	}
	if got, ok := tb.Rows[1]["Salary"]; !ok || got != nil {
		t.Fatalf("Salary[1] = %#v (present=%v), want nil", got, ok)
	}
	if got := tb.Rows[2]["Age"]; got != "abc" {
		t.Fatalf("Age[2] = %#v, want \"abc\"", got)
	}
}

// TestParse_RaggedRows checks that short rows are padded with nulls and long
// rows truncated to the header width.
func TestParse_RaggedRows(t *testing.T) {
	t.Parallel()

	in := "a,b,c\n1,2\n4,5,6,7\n"
	tb, err := ReadTable(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tb.Len())
	}
	if v, ok := tb.Rows[0]["c"]; !ok || v != nil {
		t.Fatalf("padded cell = %#v (present=%v), want nil", v, ok)
	}
	if len(tb.Rows[1]) != 3 {
		t.Fatalf("truncated row has %d keys, want 3", len(tb.Rows[1]))
	}
	if tb.Rows[1]["c"] != int64(6) {
		t.Fatalf("c[1] = %#v, want 6", tb.Rows[1]["c"])
	}
}

func TestParse_StripsBOMAndCustomComma(t *testing.T) {
	t.Parallel()

	in := "\uFEFFid;label\n1;x\n"
	tb, err := ReadTable(strings.NewReader(in), Options{Comma: ';'})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if got, want := tb.Names(), []string{"id", "label"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		isErr error
	}{
		{name: "empty input", in: "", isErr: ErrNoHeader},
		{name: "unterminated quote", in: "a,b\n1,\"oops\n", isErr: stdcsv.ErrQuote},
		{name: "unterminated after lazy quote", in: "a,b\n\"x\"y,2\n", isErr: stdcsv.ErrQuote},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tb, err := ReadTable(strings.NewReader(tt.in), Options{})
			if err == nil {
				t.Fatalf("expected error, got table with %d rows", tb.Len())
			}
			if tb != nil {
				t.Fatalf("partial table returned on error")
			}
			if tt.isErr != nil && !errors.Is(err, tt.isErr) {
				t.Fatalf("errors.Is(%v, %v) = false", err, tt.isErr)
			}
		})
	}
}

func TestParse_BareQuotesKeptLiterally(t *testing.T) {
	t.Parallel()

	in := "name,height\nBob,6'2\"\n\"Ann, Jr\",5'9\"\n\"say \"\"hi\"\"\",1\n"
	tb, err := ReadTable(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	want := []records.Record{
		{"name": "Bob", "height": "6'2\""},
		{"name": "Ann, Jr", "height": "5'9\""},
		{"name": "say \"hi\"", "height": "1"},
	}
	if !reflect.DeepEqual(tb.Rows, want) {
		t.Fatalf("rows = %#v, want %#v", tb.Rows, want)
	}
}

func TestParse_HeaderNamesMadeUnique(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"duplicates", "a,a,b,a\n1,2,3,4\n", []string{"a", "a.1", "b", "a.2"}},
		{"empty names", "name,,age,\nx,1,2,3\n", []string{"name", "Unnamed: 1", "age", "Unnamed: 3"}},
		{"suffix already taken", "a,a.1,a\n1,2,3\n", []string{"a", "a.1", "a.2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tb, err := ReadTable(strings.NewReader(tc.in), Options{})
			if err != nil {
				t.Fatalf("ReadTable: %v", err)
			}
			if got := tb.Names(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Names() = %q, want %q", got, tc.want)
			}
			for _, r := range tb.Rows {
				if len(r) != len(tc.want) {
					t.Fatalf("row has %d keys, want %d: %v", len(r), len(tc.want), r)
				}
			}
		})
	}
}

func TestParse_NullTokens(t *testing.T) {
	t.Parallel()

	in := "name,age\nN/A,30\nBob,NA\nnull,nan\nNone,25\n"

	tb, err := ReadTable(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tb.Kind("age") != records.KindInt {
		t.Fatalf("Kind(age) = %s, want int", tb.Kind("age"))
	}
	for i, r := range tb.Rows {
		if i != 1 && r["name"] != nil {
			t.Fatalf("name[%d] = %#v, want nil", i, r["name"])
		}
	}
	if tb.Rows[1]["age"] != nil || tb.Rows[2]["age"] != nil {
		t.Fatalf("age nulls not recognized: %v", tb.Rows)
	}

	custom, err := ReadTable(strings.NewReader(in), Options{NullValues: []string{"NA"}})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if custom.Rows[0]["name"] != "N/A" || custom.Rows[1]["age"] != nil {
		t.Fatalf("custom null set ignored: %v", custom.Rows)
	}
	if custom.Rows[2]["name"] != "null" {
		t.Fatalf("name[2] = %#v, want \"null\"", custom.Rows[2]["name"])
	}
}

func TestUnterminatedQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		comma    rune
		wantOpen bool
		wantLine int
	}{
		{"a,b\n1,2\n", ',', false, 0},
		{"a,b\n\"x\ny\",2\n", ',', false, 2},
		{"a;b\n1;\"open\n", ';', true, 2},
		{"a,b\n1,\"\"\"\n", ',', true, 2},
		{"a\r\n\"x\"\r\n", ',', false, 2},
		{"a,b\n1,x\"y\n", ',', false, 0},
	}
	for _, tc := range tests {
		line, open := unterminatedQuote([]byte(tc.in), tc.comma)
		if open != tc.wantOpen || line != tc.wantLine {
			t.Errorf("unterminatedQuote(%q) = (%d, %v), want (%d, %v)", tc.in, line, open, tc.wantLine, tc.wantOpen)
		}
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	tb, err := ReadTable(strings.NewReader("a,b\n"), Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tb.Len() != 0 || len(tb.Columns) != 2 {
		t.Fatalf("got %d rows / %d cols, want 0 / 2", tb.Len(), len(tb.Columns))
	}
	if tb.Kind("a") != records.KindString {
		t.Fatalf("empty column kind = %s, want string", tb.Kind("a"))
	}
}

func TestStripBOM(t *testing.T) {
	t.Parallel()

	if got := StripBOM(nil); len(got) != 0 {
		t.Fatalf("StripBOM(nil) = %q", got)
	}
	if got := StripBOM([]byte("\uFEFFa,b")); string(got) != "a,b" {
		t.Fatalf("StripBOM = %q", got)
	}
	if got := StripBOM([]byte("a,\uFEFF")); string(got) != "a,\uFEFF" {
		t.Fatalf("StripBOM touched a non-leading mark: %q", got)
	}
}
