// Command csv2sqlite loads a CSV file into a database table, replacing the
// table if it exists.
//
//	csv2sqlite --csv people.csv --db people.db [--table data]
//
// --db is a SQLite file path unless it is a postgres://, sqlserver://,
// mysql:// or mongodb:// URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"csvetl/internal/config"
	"csvetl/internal/pipeline"

	_ "csvetl/internal/storage/all"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit status: 2 for bad usage, 0 otherwise. Pipeline
// failures are reported on stdout and still exit 0.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csv2sqlite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	csvPath := fs.String("csv", "", "path to the input CSV file (required)")
	dbPath := fs.String("db", "", "SQLite database path or database URL (required)")
	table := fs.String("table", config.DefaultTable, "destination table name")
	verbose := fs.Bool("v", false, "log load batch progress")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *csvPath == "" || *dbPath == "" {
		fmt.Fprintln(stderr, "csv2sqlite: --csv and --db are required")
		fs.Usage()
		return 2
	}

	p := config.SQLite(*csvPath, *dbPath, *table)
	r := pipeline.Runner{Log: log.New(stdout, "", 0), Verbose: *verbose}
	_, err := r.Run(ctx, p)

	var se *pipeline.StageError
	switch {
	case err == nil:
		fmt.Fprintln(stdout, "[SUCCESS] ETL pipeline completed successfully.")
	case errors.As(err, &se) && se.Stage == pipeline.StageCheck && errors.Is(err, pipeline.ErrInputNotFound):
		fmt.Fprintf(stdout, "[ERROR] CSV file '%s' does not exist.\n", *csvPath)
	case errors.As(err, &se):
		fmt.Fprintf(stdout, "[FAILURE] %s: %v\n", se.Stage, se.Err)
	default:
		fmt.Fprintf(stdout, "[FAILURE] %v\n", err)
	}
	return 0
}
