// Package fsutil contains the small file helpers shared by the cache and bundle writers.
package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// DirPerm is used when creating parent directories of written files.
	DirPerm = 0o755
	// FilePerm is applied to every file written by WriteFileAtomic.
	FilePerm = 0o644
)

// WriteFileAtomic writes data to a temp file next to path and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
