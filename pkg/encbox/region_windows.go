//go:build windows

package encbox

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// allocRegion commits memory for a Ptr, and tries to keep it from being paged to disk.
func allocRegion(size uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to allocate %d bytes: %w", ErrAlloc, size, err)
	}
	// Locking is best effort, the working set may be too small.
	_ = windows.VirtualLock(addr, size)
	return addr, nil
}

func freeRegion(addr, size uintptr) error {
	_ = windows.VirtualUnlock(addr, size)
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("%w: failed to free region: %w", ErrAlloc, err)
	}
	return nil
}
