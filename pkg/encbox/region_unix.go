//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package encbox

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocRegion maps anonymous memory for a Ptr, and tries to keep it from being swapped to disk.
// MmapPtr is used instead of Mmap so that x/sys keeps no record of the mapping.
func allocRegion(size uintptr) (uintptr, error) {
	ptr, err := unix.MmapPtr(-1, 0, nil, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to map %d bytes: %w", ErrAlloc, size, err)
	}
	addr := uintptr(ptr)
	// Locking is best effort, it may not be permitted for this process.
	_ = unix.Mlock(regionBytes(addr, size))
	return addr, nil
}

func freeRegion(addr, size uintptr) error {
	_ = unix.Munlock(regionBytes(addr, size))
	if err := unix.MunmapPtr(regionPointer(addr), size); err != nil {
		return fmt.Errorf("%w: failed to unmap region: %w", ErrAlloc, err)
	}
	return nil
}
