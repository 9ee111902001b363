// Package datasource defines where the Extract stage reads its bytes from.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw input of a pipeline run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
