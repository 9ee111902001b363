package records

import "fmt"

// Column describes one column of a Table.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Table is an ordered sequence of rows sharing an ordered column set. Every
// row carries a key for every column; a missing value is stored as nil.
type Table struct {
	Columns []Column
	Rows    []Record
}

// NewTable returns an empty table with the given columns, all of KindString.
func NewTable(names ...string) *Table {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Kind: KindString}
	}
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Kind returns the kind of column name (KindString when absent).
func (t *Table) Kind(name string) Kind {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i].Kind
	}
	return KindString
}

// SetKind updates the kind of an existing column.
func (t *Table) SetKind(name string, k Kind) {
	if i := t.Index(name); i >= 0 {
		t.Columns[i].Kind = k
	}
}

// Append adds a row, filling any undeclared column with nil and discarding
// keys the table does not declare.
func (t *Table) Append(r Record) {
	row := make(Record, len(t.Columns))
	for _, c := range t.Columns {
		row[c.Name] = r[c.Name]
	}
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a column (or retypes an existing one) and sets every row's
// value for it to nil.
func (t *Table) AddColumn(name string, k Kind) {
	if i := t.Index(name); i >= 0 {
		t.Columns[i].Kind = k
	} else {
		t.Columns = append(t.Columns, Column{Name: name, Kind: k})
	}
	for _, r := range t.Rows {
		r[name] = nil
	}
}

// DropColumn removes a column and its values. Unknown names are ignored.
func (t *Table) DropColumn(name string) {
	i := t.Index(name)
	if i < 0 {
		return
	}
	t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
	for _, r := range t.Rows {
		delete(r, name)
	}
}

// RenameColumn renames from to to in place, keeping its position. An existing
// column named to is replaced.
func (t *Table) RenameColumn(from, to string) error {
	i := t.Index(from)
	if i < 0 {
		return fmt.Errorf("records: rename: no column %q", from)
	}
	if from == to {
		return nil
	}
	if t.Has(to) {
		t.DropColumn(to)
		i = t.Index(from)
	}
	t.Columns[i].Name = to
	for _, r := range t.Rows {
		r[to] = r[from]
		delete(r, from)
	}
	return nil
}

// Filter keeps the rows for which keep returns true and reports how many were
// removed. Row order is preserved.
func (t *Table) Filter(keep func(Record) bool) int {
	out := t.Rows[:0]
	for _, r := range t.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	removed := len(t.Rows) - len(out)
	for i := len(out); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = out
	return removed
}

// InferKind re-derives a numeric column's kind from its current values:
// KindInt when every non-null value is an int64, KindFloat otherwise.
// Non-numeric columns are left unchanged.
func (t *Table) InferKind(name string) Kind {
	k := t.Kind(name)
	if k != KindInt && k != KindFloat {
		return k
	}
	k = KindInt
	for _, r := range t.Rows {
		if _, ok := r[name].(float64); ok {
			k = KindFloat
			break
		}
	}
	t.SetKind(name, k)
	return k
}
