package versionsync

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSync is returned in check mode when the target version differs from the source.
	ErrOutOfSync = errors.New("target version is out of sync with source")
	// ErrInvalidRequest is returned for requests that cannot be served, such as an unknown format.
	ErrInvalidRequest = errors.New("invalid sync request")
)

// ParseError reports content that is not valid in the expected structured format.
type ParseError struct {
	Location string
	Format   string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Location, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a record that parsed but lacks the expected shape.
type SchemaError struct {
	Location string
	Field    string
	Reason   string
	Err      error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Reason)
	}
	return fmt.Sprintf("%s: field %q %s", e.Location, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IOError reports a location that could not be read or written.
type IOError struct {
	Op       string
	Location string
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
