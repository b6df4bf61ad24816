package tracefile

import (
	"errors"
	"fmt"
)

// Kinds of FormatError. Match them with errors.Is.
var (
	ErrTooFewColumns    = errors.New("too few column values")
	ErrTooManyColumns   = errors.New("too many column values")
	ErrMissingSeparator = errors.New("cannot read separator")
	ErrInvalidSeparator = errors.New("separator is not ','")
	ErrInvalidValue     = errors.New("invalid value")
	ErrRowCount         = errors.New("unexpected number of rows")
)

// FormatError describes malformed grid text. Row and Column are 0-based;
// Column is -1 for row-count errors.
type FormatError struct {
	Path   string
	Row    int
	Column int
	Kind   error
	Detail string
}

func (e *FormatError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	loc := fmt.Sprintf("row %d", e.Row)
	if e.Column >= 0 {
		loc += fmt.Sprintf(" column %d", e.Column)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, loc, msg)
	}
	return loc + ": " + msg
}

func (e *FormatError) Unwrap() error { return e.Kind }
