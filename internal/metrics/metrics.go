// Package metrics records pipeline metrics through a global, pluggable
// backend. The default backend discards everything, so instrumentation is
// always safe to call. Concrete systems live in subpackages (prompush,
// datadog).
package metrics

import (
	"sync"
	"time"
)

// Metric names shared by every backend.
const (
	StageTotal      = "csvetl_stage_total"
	StageDuration   = "csvetl_stage_duration_seconds"
	RowsTotal       = "csvetl_rows_total"
	RuleDroppedRows = "csvetl_rule_dropped_rows_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style value.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes buffered metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs b. Passing nil restores the no-op backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = nopBackend{}
	}
	backend = b
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStage counts one run of an ETL stage (extract, transform, load) and
// observes its duration, labelled with the outcome.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	b := current()
	b.IncCounter(StageTotal, 1, lbls)
	b.ObserveHistogram(StageDuration, d.Seconds(), lbls)
}

// RecordRows adds n rows of the given kind ("extracted", "loaded").
func RecordRows(job, kind string, n int64) {
	if n <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(n), Labels{"job": job, "kind": kind})
}

// RecordRule adds the rows a transform rule removed.
func RecordRule(job, rule string, dropped int) {
	if dropped <= 0 {
		return
	}
	current().IncCounter(RuleDroppedRows, float64(dropped), Labels{"job": job, "rule": rule})
}
