package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"csvetl/internal/metrics"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL returns error", jobName: "job", wantErr: true},
		{name: "empty job name uses default", gatewayURL: "http://pushgateway:9091", wantJobName: "csvetl"},
		{name: "explicit job name is preserved", jobName: "csv_to_sqlite", gatewayURL: "http://pushgateway:9091", wantJobName: "csv_to_sqlite"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend() = %v, %v; want nil, error", b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend() error = %v", err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

// TestIncCounter verifies routing to the right collectors.
func TestIncCounter(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("job", "http://example.com")
	if err != nil {
		t.Fatal(err)
	}
	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{"stage": "load", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 3, metrics.Labels{"kind": "extracted"})
	b.IncCounter(metrics.RuleDroppedRows, 2, metrics.Labels{"rule": "age_filter"})
	b.IncCounter(metrics.RuleDroppedRows, 1, metrics.Labels{"rule": "age_filter"})
	b.IncCounter("unknown", 10, metrics.Labels{"x": "y"})

	if got := readCounterValue(t, b.stageCounter.WithLabelValues("load", "success")); got != 1 {
		t.Fatalf("stage = %v", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues("extracted")); got != 3 {
		t.Fatalf("rows = %v", got)
	}
	if got := readCounterValue(t, b.ruleDropped.WithLabelValues("age_filter")); got != 3 {
		t.Fatalf("rule = %v", got)
	}
}

// TestZeroValueBackend ensures missing collectors are tolerated.
func TestZeroValueBackend(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{})
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{})
	b.IncCounter(metrics.RuleDroppedRows, 1, metrics.Labels{})
	b.ObserveHistogram(metrics.StageDuration, 1, metrics.Labels{})
}

func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, _ := NewBackend("job", "http://example.com")
	b.ObserveHistogram(metrics.StageDuration, 1.5, metrics.Labels{"stage": "load", "status": "success"})
	b.ObserveHistogram("other", 9, metrics.Labels{"stage": "load", "status": "success"})

	m := &dto.Metric{}
	if err := b.stageDuration.WithLabelValues("load", "success").(prometheus.Metric).Write(m); err != nil {
		t.Fatal(err)
	}
	if s := m.GetSummary(); s.GetSampleCount() != 1 || s.GetSampleSum() != 1.5 {
		t.Fatalf("summary count=%d sum=%v", s.GetSampleCount(), s.GetSampleSum())
	}
}

// TestFlush pushes to a fake Pushgateway and checks the request.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushed struct {
		method, path, body string
	}
	reqCh := make(chan pushed, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushed{r.Method, r.URL.Path, string(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("basic_etl", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	b.IncCounter(metrics.RowsTotal, 4, metrics.Labels{"kind": "loaded"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	select {
	case got := <-reqCh:
		if got.method != http.MethodPut {
			t.Fatalf("method = %s, want PUT", got.method)
		}
		if !strings.Contains(got.path, "/job/basic_etl") {
			t.Fatalf("path = %s", got.path)
		}
		if got.body == "" {
			t.Fatalf("empty push body")
		}
	default:
		t.Fatalf("Flush() did not reach the Pushgateway")
	}
}
