// Package pipeline runs one Extract → Transform → Load pass described by a
// config.Pipeline and reports progress through a standard logger.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"csvetl/internal/config"
	"csvetl/internal/datasource"
	"csvetl/internal/datasource/file"
	"csvetl/internal/metrics"
	"csvetl/internal/parser"
	csvparser "csvetl/internal/parser/csv"
	"csvetl/internal/storage"
	"csvetl/internal/transformer"
	"csvetl/pkg/records"
)

// Summary describes a finished (or partially finished) run.
type Summary struct {
	RunID     string                   `json:"run_id"`
	Extracted int                      `json:"extracted"`
	Remaining int                      `json:"remaining"`
	Loaded    int64                    `json:"loaded"`
	Steps     []transformer.StepReport `json:"steps"`
}

// Runner executes pipelines.
type Runner struct {
	// Log receives progress markers; nil means a stdout logger without
	// prefix or flags.
	Log *log.Logger
	// Verbose forwards storage batch progress to Log.
	Verbose bool
}

func (r Runner) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.New(os.Stdout, "", 0)
}

// Run executes p. On failure the returned error is a *StageError and nothing
// has been written to the destination.
func (r Runner) Run(ctx context.Context, p config.Pipeline) (Summary, error) {
	lg := r.logger()
	sum := Summary{RunID: uuid.NewString()}
	job := p.Job
	if job == "" {
		job = "csvetl"
	}
	lg.Printf("[INFO] run=%s job=%s started", sum.RunID, job)

	if p.Source.MustExist {
		if err := checkInput(p.Source.Path); err != nil {
			metrics.RecordStage(job, StageCheck, err, 0)
			return sum, err
		}
	}

	start := time.Now()
	t, err := r.extract(ctx, p.Source)
	metrics.RecordStage(job, StageExtract, err, time.Since(start))
	if err != nil {
		return sum, &StageError{Stage: StageExtract, Kind: extractKind(err), Err: err}
	}
	sum.Extracted = t.Len()
	metrics.RecordRows(job, "extracted", int64(sum.Extracted))
	lg.Printf("[INFO] Extracted %d rows from '%s'", sum.Extracted, p.Source.Path)
	lg.Print("Extraction complete.")

	start = time.Now()
	steps, err := r.transform(lg, p.Transform, t)
	metrics.RecordStage(job, StageTransform, err, time.Since(start))
	if err != nil {
		return sum, &StageError{Stage: StageTransform, Kind: ErrConfig, Err: err}
	}
	sum.Steps = steps
	sum.Remaining = t.Len()
	for _, s := range steps {
		metrics.RecordRule(job, s.Rule, s.Dropped)
	}
	lg.Printf("[INFO] Data cleaned. Remaining rows: %d", sum.Remaining)
	lg.Print("Transformation complete.")

	start = time.Now()
	if p.Storage.Table == "" {
		p.Storage.Table = config.DefaultTable
	}
	kind, n, err := r.load(ctx, lg, p.Storage, t)
	metrics.RecordStage(job, StageLoad, err, time.Since(start))
	if err != nil {
		return sum, &StageError{Stage: StageLoad, Kind: ErrStorage, Err: err}
	}
	sum.Loaded = n
	metrics.RecordRows(job, "loaded", n)
	if kind == "csv" {
		lg.Printf("Data successfully saved to %s", p.Storage.DSN)
	} else {
		lg.Printf("[INFO] Loaded %d rows into '%s' (table: %s)", n, p.Storage.DSN, p.Storage.Table)
	}
	lg.Print("Load complete.")
	return sum, nil
}

func checkInput(path string) error {
	ok, err := file.NewLocal(path).Exists()
	if err != nil {
		return &StageError{Stage: StageCheck, Kind: ErrParse, Err: err}
	}
	if !ok {
		return &StageError{
			Stage: StageCheck,
			Kind:  ErrInputNotFound,
			Err:   fmt.Errorf("%s: %w", path, fs.ErrNotExist),
		}
	}
	return nil
}

func (r Runner) extract(ctx context.Context, src config.Source) (*records.Table, error) {
	var in datasource.Source = file.NewLocal(src.Path)
	rc, err := in.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var dec parser.Parser = csvparser.NewParser(csvparser.Options{Comma: src.Delimiter(), NullValues: src.NullValues})
	t, err := dec.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return t, nil
}

func (r Runner) transform(lg *log.Logger, tr config.Transform, t *records.Table) ([]transformer.StepReport, error) {
	chain, err := transformer.Profile(tr.Profile)
	if err != nil {
		return nil, err
	}
	lg.Print("[INFO] Starting data transformation...")
	return chain.Apply(t, lg), nil
}

func (r Runner) load(ctx context.Context, lg *log.Logger, st config.Storage, t *records.Table) (string, int64, error) {
	kind := st.Kind
	if kind == "" {
		kind = storage.KindFor(st.DSN)
	}
	cfg := storage.Config{Kind: kind, DSN: st.DSN, Table: st.Table}
	if r.Verbose {
		cfg.Log = lg
	}

	repo, err := storage.New(ctx, cfg)
	if err != nil {
		return kind, 0, err
	}
	defer repo.Close()

	n, err := repo.Replace(ctx, t)
	if err != nil {
		return kind, 0, err
	}
	return kind, n, nil
}
