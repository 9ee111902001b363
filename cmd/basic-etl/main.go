// Command basic-etl copies input_data.csv to output_data.csv, adding an
// uppercase copy of the name column.
package main

import (
	"context"
	"fmt"

	"csvetl/internal/config"
	"csvetl/internal/pipeline"

	_ "csvetl/internal/storage/csvfile"
)

func main() {
	if _, err := (pipeline.Runner{}).Run(context.Background(), config.Basic()); err != nil {
		fmt.Printf("ETL process failed: %v\n", err)
	}
}
