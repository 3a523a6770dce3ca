//go:build !unix

package alloc

// osAlloc falls back to the Go heap on platforms without anonymous mmap
// support. The eager-commit write pass still pre-faults the pages.
func osAlloc(size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)

	return data, func([]byte) error { return nil }, nil
}
