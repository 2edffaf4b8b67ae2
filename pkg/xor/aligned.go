package xor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrUnsupportedSize = errors.New("size is not reducible by the chunk ladder")
)

// Ladder is a descending list of chunk widths used by ScreenAligned.
// Only the widths 8, 4, 2, and 1 are meaningful, others are ignored.
type Ladder []int

var (
	// WordLadder can reduce any size, falling back to single bytes.
	WordLadder = Ladder{8, 4, 2, 1}
	// AddressLadder only allows whole 64 or 32-bit words, which is what an address should be made of.
	AddressLadder = Ladder{8, 4}
)

// next returns the width of the next chunk to consume, or 0 if none of the widths apply.
func (l Ladder) next(remaining, keyLen int) int {
	for _, w := range l {
		switch w {
		case 8, 4, 2, 1:
		default:
			continue
		}
		if w <= keyLen && remaining%w == 0 {
			return w
		}
	}
	return 0
}

func (l Ladder) check(size, keyLen int) error {
	for remaining := size; remaining > 0; {
		w := l.next(remaining, keyLen)
		if w == 0 {
			return fmt.Errorf("%w: %d byte(s) left of %d with key length %d", ErrUnsupportedSize, remaining, size, keyLen)
		}
		remaining -= w
	}
	return nil
}

// Check reports whether a value of the given size can be fully screened with this Ladder and a key of at least 8 bytes.
// This is intended to be called when a value's layout is first known, so unsupported sizes are rejected up front.
func (l Ladder) Check(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrUnsupportedSize, size)
	}
	return l.check(size, 8)
}

// ScreenAligned applies key to buf in place, chunk by chunk from the end of buf.
// Each chunk is XORed as a native-endian integer against the same-width prefix of the key.
// The whole buffer is validated before any byte is changed, so an error means buf is untouched.
func ScreenAligned(key, buf []byte, ladder Ladder) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if err := ladder.check(len(buf), len(key)); err != nil {
		return err
	}
	ne := binary.NativeEndian
	for remaining := len(buf); remaining > 0; {
		w := ladder.next(remaining, len(key))
		chunk := buf[remaining-w : remaining]
		switch w {
		case 8:
			ne.PutUint64(chunk, ne.Uint64(chunk)^ne.Uint64(key))
		case 4:
			ne.PutUint32(chunk, ne.Uint32(chunk)^ne.Uint32(key))
		case 2:
			ne.PutUint16(chunk, ne.Uint16(chunk)^ne.Uint16(key))
		case 1:
			chunk[0] ^= key[0]
		}
		remaining -= w
	}
	return nil
}
