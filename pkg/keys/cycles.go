//go:build amd64 || arm64

package keys

// Cycles samples the hardware cycle counter.
func Cycles() uint64 {
	return cycles()
}

func cycles() uint64
