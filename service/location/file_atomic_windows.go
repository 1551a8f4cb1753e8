//go:build windows

package location

import (
	"errors"
	"io/fs"
)

func writeFileAtomic(string, []byte, fs.FileMode) error {
	return errors.New("atomic writes are not supported on windows")
}
