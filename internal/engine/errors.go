package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-attendance/internal/config"
)

// Sentinel errors, one per failure class of the pipeline.
// Callers match them with errors.Is.
var (
	ErrInvalidInputFile = errors.New(config.ErrInvalidInputFile)
	ErrHeaderFormat     = errors.New(config.ErrHeaderFormat)
	ErrRowParse         = errors.New(config.ErrRowParse)
)

// RowError reports an attendance row that could not be turned into a Person.
type RowError struct {
	Line int // 1-based line in the input file, 0 when unknown
	Err  error
}

func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %v", config.ErrRowParse, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", config.ErrRowParse, e.Err)
}

// Unwrap exposes both the row-parse class and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrRowParse, e.Err}
}
