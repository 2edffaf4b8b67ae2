package xor

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyKey = errors.New("cannot use empty key")
)

// Screen applies key to every byte of buf in place, starting with the first key byte.
func Screen(key, buf []byte) {
	ScreenAt(key, buf, 0)
}

// ScreenAt applies key to buf in place, starting at the given offset within the key.
// The returned offset is where the next call should continue so that a key stream spans multiple buffers.
func ScreenAt(key, buf []byte, offset int) int {
	if len(key) == 0 {
		return offset
	}
	cur := offset % len(key)
	for i := range buf {
		buf[i] ^= key[cur]
		cur++
		if cur == len(key) {
			cur = 0
		}
	}
	return cur
}

type xorScreen struct {
	key  []byte
	init int
	cur  int
}

func newXorScreen(key []byte, offset ...int) (*xorScreen, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	s := &xorScreen{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= len(key) {
			return nil, fmt.Errorf("offset %d out of range for provided key of len %d", offset[0], len(key))
		}
		s.init = offset[0]
		s.cur = s.init
	}
	return s, nil
}

func (s *xorScreen) screen(buf []byte) {
	s.cur = ScreenAt(s.key, buf, s.cur)
}

func (s *xorScreen) reset() {
	s.cur = s.init
}
