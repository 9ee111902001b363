// Package csv turns delimited text into a records.Table: the header row names
// the columns, every following row becomes a Record, and each column gets a
// scalar kind inferred from its cells.
package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"csvetl/pkg/records"
)

// ErrNoHeader is returned when the input holds no header row at all.
var ErrNoHeader = errors.New("csv: no header row")

// DefaultNullValues are the cell texts read as null when Options.NullValues
// is nil. The empty cell is always null.
var DefaultNullValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options configures the CSV parser. The zero value reads comma-separated
// input with DefaultNullValues.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// NullValues lists exact cell texts read as null. Nil means
	// DefaultNullValues; an empty non-nil slice leaves only the empty cell.
	NullValues []string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs but not for concurrent use.
type Parser struct {
	opt   Options
	nulls map[string]struct{}
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	if opt.Comma == 0 {
		opt.Comma = ','
	}
	vals := opt.NullValues
	if vals == nil {
		vals = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(vals)+1)
	nulls[""] = struct{}{}
	for _, v := range vals {
		nulls[v] = struct{}{}
	}
	return &Parser{opt: opt, nulls: nulls}
}

// Parse reads all of r into a Table.
//
// A quoted field left open at end of input fails the whole read. A stray
// quote inside an unquoted field is kept literally. Rows whose width differs
// from the header are padded with nulls or truncated. Null tokens become nil.
// Empty and repeated header names are made unique ("Unnamed: 2", "a.1").
// Nothing is returned on failure.
func (p *Parser) Parse(r io.Reader) (*records.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = StripBOM(data)
	if line, open := unterminatedQuote(data, p.opt.Comma); open {
		return nil, fmt.Errorf("read csv: quoted field starting on line %d is never closed: %w", line, csv.ErrQuote)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = p.opt.Comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header = uniqueHeaders(header)

	var raw [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		raw = append(raw, fitRowToWidth(row, len(header)))
	}

	kinds := inferKinds(len(header), raw, p.isNull)
	t := &records.Table{Columns: make([]records.Column, len(header))}
	for i, name := range header {
		t.Columns[i] = records.Column{Name: name, Kind: kinds[i]}
	}
	t.Rows = make([]records.Record, 0, len(raw))
	for _, row := range raw {
		rec := make(records.Record, len(header))
		for i, cell := range row {
			if p.isNull(cell) {
				rec[header[i]] = nil
				continue
			}
			rec[header[i]] = typedValue(cell, kinds[i])
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func (p *Parser) isNull(s string) bool {
	_, ok := p.nulls[s]
	return ok
}

// ReadTable is shorthand for NewParser(opt).Parse(r).
func ReadTable(r io.Reader, opt Options) (*records.Table, error) {
	return NewParser(opt).Parse(r)
}

// fitRowToWidth truncates or pads a CSV record to exactly n fields.
func fitRowToWidth(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	cp := make([]string, n)
	copy(cp, row)
	return cp
}

// uniqueHeaders names empty headers "Unnamed: <index>" and suffixes repeats
// with ".1", ".2", ... skipping names already taken.
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		out[i] = h
	}
	taken := make(map[string]bool, len(out))
	for _, h := range out {
		taken[h] = true
	}
	for i, h := range out {
		n, dup := seen[h]
		if !dup {
			seen[h] = 1
			continue
		}
		for {
			cand := h + "." + strconv.Itoa(n)
			n++
			if !taken[cand] {
				out[i] = cand
				taken[cand] = true
				break
			}
		}
		seen[h] = n
	}
	return out
}
