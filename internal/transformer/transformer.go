// Package transformer runs the Transform stage: an ordered list of rules, each
// guarded by a predicate over the table's current column set.
package transformer

import (
	"log"

	"csvetl/pkg/records"
)

// Transformer mutates a table in place and returns how many rows it removed.
type Transformer interface {
	Apply(t *records.Table) int
}

// Seq runs transformers in order as one unit.
type Seq []Transformer

// Apply implements Transformer.
func (s Seq) Apply(t *records.Table) int {
	dropped := 0
	for _, tr := range s {
		dropped += tr.Apply(t)
	}
	return dropped
}

// Predicate decides whether a rule applies to the table as it is now.
type Predicate func(t *records.Table) bool

// HasColumn matches tables that currently carry a column called name.
func HasColumn(name string) Predicate {
	return func(t *records.Table) bool { return t.Has(name) }
}

// Rule pairs a guard with the transformation it enables.
type Rule struct {
	// Name identifies the rule in logs and reports.
	Name string
	// When guards the rule; nil means always.
	When Predicate
	// Do is the transformation applied when When holds.
	Do Transformer
	// Skip is logged when When does not hold.
	Skip string
	// Destructive rules may remove rows; their row counts are reported.
	Destructive bool
	// Report, when set, replaces the default destructive-rule log line. It is
	// a Printf format receiving dropped and remaining counts.
	Report string
}

// StepReport is the outcome of one rule.
type StepReport struct {
	Rule      string `json:"rule"`
	Applied   bool   `json:"applied"`
	Dropped   int    `json:"dropped"`
	Remaining int    `json:"remaining"`
}

// Chain is an ordered list of rules.
type Chain []Rule

// Apply evaluates every rule in order against t. Skipped rules log their note;
// destructive rules log rows dropped and rows remaining. lg may be nil, in
// which case the standard logger is used.
func (c Chain) Apply(t *records.Table, lg *log.Logger) []StepReport {
	if lg == nil {
		lg = log.Default()
	}
	reports := make([]StepReport, 0, len(c))
	for _, r := range c {
		rep := StepReport{Rule: r.Name}
		if r.When != nil && !r.When(t) {
			if r.Skip != "" {
				lg.Print(r.Skip)
			}
			rep.Remaining = t.Len()
			reports = append(reports, rep)
			continue
		}
		rep.Applied = true
		rep.Dropped = r.Do.Apply(t)
		rep.Remaining = t.Len()
		switch {
		case r.Destructive && r.Report != "":
			lg.Printf(r.Report, rep.Dropped, rep.Remaining)
		case r.Destructive:
			lg.Printf("[INFO] rule=%s dropped=%d remaining=%d", r.Name, rep.Dropped, rep.Remaining)
		}
		reports = append(reports, rep)
	}
	return reports
}
