package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds a run can fail with. Match them with errors.Is.
var (
	// ErrInputNotFound means the input file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrParse means the input could not be read as delimited text.
	ErrParse = errors.New("parse error")
	// ErrStorage means the destination could not be opened or written.
	ErrStorage = errors.New("storage error")
	// ErrConfig means the pipeline description itself is unusable.
	ErrConfig = errors.New("invalid pipeline")
)

// Stage names used in StageError and metrics.
const (
	StageCheck     = "check"
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// StageError reports which stage failed, the error kind and the cause.
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *StageError) Unwrap() []error { return []error{e.Kind, e.Err} }

// extractKind classifies an extract failure.
func extractKind(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrInputNotFound
	}
	return ErrParse
}
