package builtin

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"csvetl/pkg/records"
)

// DateLayout is the canonical output form of NormalizeDate.
const DateLayout = "2006-01-02"

// fallbackLayouts are tried in order when dateparse gives up. Day-first forms
// come before month-first ones.
var fallbackLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01.02.2006",
	"02/01/2006",
	"01/02/2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2006/01/02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
}

// NormalizeDate parses Field permissively, rewrites it in Layout (DateLayout
// when empty) and drops every row whose value is null or unparseable.
type NormalizeDate struct {
	Field  string
	Layout string
}

// Apply implements transformer.Transformer.
func (n NormalizeDate) Apply(t *records.Table) int {
	layout := n.Layout
	if layout == "" {
		layout = DateLayout
	}
	removed := t.Filter(func(r records.Record) bool {
		d, ok := ParseDate(r[n.Field])
		if !ok {
			return false
		}
		r[n.Field] = d.Format(layout)
		return true
	})
	t.SetKind(n.Field, records.KindDate)
	return removed
}

// ParseDate interprets v as a calendar date. Strings go through dateparse in
// UTC and then the fixed layout table; integral numbers are read as YYYYMMDD.
func ParseDate(v any) (time.Time, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = strings.TrimSpace(x)
	case int64:
		s = records.Format(x)
	default:
		return time.Time{}, false
	}
	if s == "" {
		return time.Time{}, false
	}
	if d, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return d, true
	}
	for _, l := range fallbackLayouts {
		if d, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
