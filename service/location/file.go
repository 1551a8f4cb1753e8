package location

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

const defaultFileMode fs.FileMode = 0o644

type fileStore struct{}

// NewFileStore returns a store for local filesystem paths.
func NewFileStore() Service {
	return fileStore{}
}

func (fileStore) Read(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Write replaces the file at path, keeping the permissions of the existing file.
func (fileStore) Write(_ context.Context, path string, data []byte, opts WriteOptions) error {
	perm := defaultFileMode
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if opts.Atomic {
		return writeFileAtomic(path, data, perm)
	}
	return os.WriteFile(path, data, perm)
}
