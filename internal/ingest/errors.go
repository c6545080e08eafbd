package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the file extension maps to no
	// known reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoData is returned when a file holds no header row. A file with
	// a header but no data rows is not an error; it yields an empty
	// dataset.
	ErrNoData = errors.New("no data found in file")
)

// ParseError wraps a failure from a format-specific reader with the
// format that produced it.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
