//go:build !windows

package location

import (
	"io/fs"

	"github.com/google/renameio/v2"
)

// writeFileAtomic fsyncs a temporary file next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
