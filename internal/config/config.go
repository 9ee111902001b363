// Package config defines the JSON-serializable description of one ETL run:
// where the CSV comes from, which rule profile cleans it, and which sink
// receives the result.
//
// The three shipped commands build their Pipeline from the presets below;
// cmd/etl decodes one from a file:
//
//	{
//	  "job":       "people",
//	  "source":    { "path": "input_data.csv", "must_exist": true },
//	  "transform": { "profile": "sqlite" },
//	  "storage":   { "kind": "sqlite", "dsn": "out.db", "table": "data" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rule profiles. Each selects a fixed rule list and exactly one name policy.
const (
	ProfileBasic  = "basic"
	ProfilePlus   = "plus"
	ProfileSQLite = "sqlite"
	ProfileStrict = "strict"
)

// DefaultTable is the relational table name used when none is given.
const DefaultTable = "data"

// Default literal paths of the two flagless CSV pipelines.
const (
	DefaultInput  = "input_data.csv"
	DefaultOutput = "output_data.csv"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run in metrics and logs.
	Job string `json:"job"`

	Source    Source    `json:"source"`
	Transform Transform `json:"transform"`
	Storage   Storage   `json:"storage"`
}

// Source identifies the input CSV file.
type Source struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`

	// Comma is the field delimiter; empty means ",".
	Comma string `json:"comma,omitempty"`

	// MustExist makes the run stop before extraction when Path is missing.
	MustExist bool `json:"must_exist"`

	// NullValues lists cell texts read as null in addition to the empty
	// cell. Omitted means the parser defaults (NA, N/A, NULL, NaN, ...);
	// an empty list disables them.
	NullValues []string `json:"null_values"`
}

// Delimiter returns the first rune of Comma, or ','.
func (s Source) Delimiter() rune {
	if s.Comma == "" {
		return ','
	}
	return []rune(s.Comma)[0]
}

// Transform selects the rule profile.
type Transform struct {
	Profile string `json:"profile"`
}

// Storage selects the sink.
type Storage struct {
	// Kind selects the backend ("csv", "sqlite", "postgres", "mssql", "mysql",
	// "mongo"). Empty means derive it from DSN.
	Kind string `json:"kind"`

	// DSN is a file path (csv, sqlite) or a connection URL.
	DSN string `json:"dsn"`

	// Table is the destination table or collection. Ignored by the csv sink.
	Table string `json:"table"`
}

// Basic is the minimal pipeline: uppercase copy of name, CSV in and out.
func Basic() Pipeline {
	return Pipeline{
		Job:       "basic_etl",
		Source:    Source{Path: DefaultInput},
		Transform: Transform{Profile: ProfileBasic},
		Storage:   Storage{Kind: "csv", DSN: DefaultOutput},
	}
}

// Plus is the CSV pipeline with age filtering, bonus derivation and the
// name → full_name rename.
func Plus() Pipeline {
	return Pipeline{
		Job:       "basic_etl_plus",
		Source:    Source{Path: DefaultInput},
		Transform: Transform{Profile: ProfilePlus},
		Storage:   Storage{Kind: "csv", DSN: DefaultOutput},
	}
}

// SQLite is the relational pipeline: strict cleaning into a database table.
func SQLite(csvPath, dbPath, table string) Pipeline {
	if table == "" {
		table = DefaultTable
	}
	return Pipeline{
		Job:       "csv_to_sqlite",
		Source:    Source{Path: csvPath, MustExist: true},
		Transform: Transform{Profile: ProfileSQLite},
		Storage:   Storage{DSN: dbPath, Table: table},
	}
}

// Strict combines the CSV and relational rule sets: snake_case headers, null
// drop, age filter, bonus, rename and date normalization.
func Strict(csvPath, dest, table string) Pipeline {
	p := SQLite(csvPath, dest, table)
	p.Job = "strict_etl"
	p.Transform.Profile = ProfileStrict
	return p
}

// Load decodes a Pipeline from a JSON file.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var p Pipeline
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return p, nil
}
