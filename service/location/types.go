package location

import (
	"context"
	"errors"
)

// WriteOptions controls how a location is overwritten.
type WriteOptions struct {
	// Atomic writes to a temporary file and renames it over the target.
	Atomic bool
}

// Service reads and writes whole records at a location: a local path or an
// s3://bucket/key URL.
type Service interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, data []byte, opts WriteOptions) error
}

// StoreFactory builds a store on first use.
type StoreFactory func(ctx context.Context) (Service, error)

var (
	// ErrS3Unavailable is returned for s3:// locations when no S3 store is configured.
	ErrS3Unavailable = errors.New("s3 locations are not configured")
	// ErrInvalidLocation is returned for malformed s3:// URLs.
	ErrInvalidLocation = errors.New("invalid location")
)
