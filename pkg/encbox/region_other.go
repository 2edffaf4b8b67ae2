//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly || windows)

package encbox

import (
	"fmt"
	"sync"
	"unsafe"
)

// pinned keeps heap backed regions reachable on platforms without a page mapping API.
var pinned sync.Map

func allocRegion(size uintptr) (uintptr, error) {
	// Backed by words for alignment.
	region := make([]uint64, (size+7)/8)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(region)))
	pinned.Store(addr, region)
	return addr, nil
}

func freeRegion(addr, _ uintptr) error {
	if _, ok := pinned.LoadAndDelete(addr); !ok {
		return fmt.Errorf("%w: unknown region", ErrAlloc)
	}
	return nil
}
