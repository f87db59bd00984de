package domain

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required columns absent from an upload after
// header normalization. Columns holds canonical names.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ParseError wraps a failure to read the uploaded file at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse spreadsheet: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyResultError means no row had both coordinates, so the map has nothing
// to draw. It is a warning: the rest of the report is still valid.
type EmptyResultError struct {
	Rows int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("none of %d rows has both latitude and longitude", e.Rows)
}
