//go:build unix

package alloc

import "golang.org/x/sys/unix"

// osAlloc maps an anonymous private region outside the Go heap, so commit
// behavior is governed solely by the allocator's policy and not by the
// runtime touching the memory first.
func osAlloc(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}
