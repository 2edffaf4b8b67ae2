//go:build !amd64 && !arm64

package keys

import "time"

var epoch = time.Now()

// Cycles samples a monotonic nanosecond clock where no cycle counter is available.
func Cycles() uint64 {
	return uint64(time.Since(epoch).Nanoseconds())
}
