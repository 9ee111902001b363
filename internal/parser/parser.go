// Package parser defines the Extract-stage contract: raw bytes in, a typed
// table out.
package parser

import (
	"io"

	"csvetl/pkg/records"
)

// Parser decodes a whole input into a Table.
type Parser interface {
	Parse(r io.Reader) (*records.Table, error)
}
