//go:build unix

package atomicfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fsync flushes f's data to the underlying device before the rename that
// publishes it, so a crash between write and rename cannot leave the
// destination path pointing at a truncated file.
func fsync(f *os.File) error {
	return unix.Fsync(int(f.Fd()))
}
