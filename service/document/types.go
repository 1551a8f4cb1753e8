package document

import "errors"

// Format identifies the structured text format of a record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultField is the field path synchronised when none is configured.
const DefaultField = "version"

var (
	// ErrNotMapping is returned when a record, or a field on its path, is not a key/value mapping.
	ErrNotMapping = errors.New("not a mapping")
	// ErrSharedValue is returned when setting a field would also change other
	// fields that reference the same YAML anchor.
	ErrSharedValue = errors.New("value is shared through a YAML anchor")
	// ErrReadOnlyFormat is returned when a format can be read but not re-encoded.
	ErrReadOnlyFormat = errors.New("format is read-only")
)

// Document is a parsed configuration record that keeps the order of its keys.
type Document interface {
	// Lookup returns the value at path. String fields are returned as string.
	Lookup(path []string) (any, bool)
	// SetString sets the field at path, creating intermediate mappings as needed.
	SetString(path []string, value string) error
	// Encode serializes the record with two-space indentation.
	Encode() ([]byte, error)
}

// Options tune how a document is encoded.
type Options struct {
	// FinalNewline appends a newline after JSON output.
	FinalNewline bool
}
