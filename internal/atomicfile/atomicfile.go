// Package atomicfile writes a file by staging it alongside the final path
// and renaming it into place, so a crash or concurrent reader never
// observes a partially written file. fsync behaviour before the rename is
// platform-specific; see atomicfile_unix.go and atomicfile_other.go.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write stages data to a temporary file in the same directory as path,
// fsyncs it (where supported), and renames it over path.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("atomicfile: creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("atomicfile: writing temp file: %w", err)
	}

	if err := fsync(tmp); err != nil {
		tmp.Close()

		return fmt.Errorf("atomicfile: fsync: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomicfile: closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("atomicfile: chmod: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("atomicfile: rename into place: %w", err)
	}

	return nil
}
