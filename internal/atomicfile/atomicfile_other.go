//go:build !unix

package atomicfile

import "os"

// fsync is a no-op on platforms without a direct fsync syscall wrapper;
// os.File.Close still flushes buffered writes to the OS.
func fsync(f *os.File) error {
	return nil
}
