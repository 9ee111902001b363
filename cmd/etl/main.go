// Command etl runs one pipeline described by a JSON file against any
// registered storage backend, optionally pushing run metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"csvetl/internal/config"
	"csvetl/internal/metrics"
	"csvetl/internal/metrics/datadog"
	"csvetl/internal/metrics/prompush"
	"csvetl/internal/pipeline"
	"csvetl/internal/storage"

	// register all backends with the storage factory.
	_ "csvetl/internal/storage/all"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	cfgPath        string
	metricsBackend string
	pushGatewayURL string
	statsdAddr     string
	validate       bool
	verbose        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.cfgPath, "config", "pipeline.json", "pipeline config JSON path")
	fs.StringVar(&o.metricsBackend, "metrics-backend", "none", "metrics backend to use (none, pushgateway, datadog)")
	fs.StringVar(&o.pushGatewayURL, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL")
	fs.StringVar(&o.statsdAddr, "statsd-addr", "127.0.0.1:8125", "DogStatsD address")
	fs.BoolVar(&o.validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&o.verbose, "v", false, "enable verbose logs")
	err := fs.Parse(args)
	return o, err
}

// run returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	lg := log.New(stdout, "", 0)

	p, err := config.Load(o.cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fmt.Fprintf(stderr, "Configuration is invalid: %s\n", o.cfgPath)
		return 1
	}
	if o.validate {
		lg.Printf("Configuration is valid: %s", o.cfgPath)
		return 0
	}

	if flush := setupMetrics(o, p.Job, lg); flush != nil {
		defer flush()
	}

	start := time.Now()
	if o.verbose {
		lg.Printf("pipeline: source=%s profile=%s storage=%s table=%s",
			p.Source.Path, p.Transform.Profile, p.Storage.Kind, p.Storage.Table)
		lg.Printf("storage: registered=%s", strings.Join(storage.ListKinds(), ","))
	}

	sum, err := pipeline.Runner{Log: lg, Verbose: o.verbose}.Run(ctx, p)
	if err != nil {
		fmt.Fprintf(stderr, "run=%s failed: %v\n", sum.RunID, err)
		return 1
	}
	if o.verbose {
		lg.Printf("run=%s extracted=%d remaining=%d loaded=%d elapsed=%s",
			sum.RunID, sum.Extracted, sum.Remaining, sum.Loaded,
			time.Since(start).Truncate(time.Millisecond))
	}
	return 0
}

// setupMetrics installs the selected backend and returns its flush func, or
// nil when metrics stay disabled.
func setupMetrics(o options, job string, lg *log.Logger) func() {
	if job == "" {
		job = "csvetl"
	}
	var (
		b   metrics.Backend
		err error
	)
	switch o.metricsBackend {
	case "", "none":
		if o.verbose {
			lg.Printf("metrics: disabled")
		}
		return nil
	case "pushgateway":
		b, err = prompush.NewBackend(job, o.pushGatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       o.statsdAddr,
			Namespace:  "csvetl.",
			GlobalTags: []string{"job:" + job},
		})
	default:
		lg.Printf("metrics: unknown backend %q; metrics disabled", o.metricsBackend)
		return nil
	}
	if err != nil {
		lg.Printf("metrics: failed to init %s backend: %v; using nop", o.metricsBackend, err)
		return nil
	}
	lg.Printf("metrics: backend=%s job_name=%s", o.metricsBackend, job)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			lg.Printf("metrics: flush error: %v", err)
		}
		metrics.SetBackend(nil)
	}
}
