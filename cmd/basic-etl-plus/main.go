// Command basic-etl-plus cleans input_data.csv into output_data.csv: headers
// are lowercased, rows with age <= 25 are dropped, a 10% bonus is derived
// from salary and name becomes full_name.
package main

import (
	"context"
	"fmt"

	"csvetl/internal/config"
	"csvetl/internal/pipeline"

	_ "csvetl/internal/storage/csvfile"
)

func main() {
	if _, err := (pipeline.Runner{}).Run(context.Background(), config.Plus()); err != nil {
		fmt.Printf("ETL process failed: %v\n", err)
	}
}
