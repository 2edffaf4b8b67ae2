package xor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewXorScreenNeg(t *testing.T) {
	_, err := newXorScreen(nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = newXorScreen([]byte{0}, -1)
	assert.Error(t, err)
	_, err = newXorScreen([]byte{0}, 1)
	assert.Error(t, err)
	_, err = newXorScreen([]byte{0}, 2)
	assert.Error(t, err)
}

func TestScreen_Involution(t *testing.T) {
	var (
		key  = []byte{0xde, 0xad, 0xbe, 0xef}
		orig = []byte("a value that should come back")
		buf  = append([]byte(nil), orig...)
	)
	Screen(key, buf)
	assert.NotEqual(t, orig, buf)
	Screen(key, buf)
	assert.Equal(t, orig, buf)
}

func TestScreen_RepeatsKey(t *testing.T) {
	buf := make([]byte, 5)
	Screen([]byte{1, 2}, buf)
	assert.Equal(t, []byte{1, 2, 1, 2, 1}, buf)
}

func TestScreenAt_Continues(t *testing.T) {
	var (
		key   = []byte{1, 2, 3}
		whole = make([]byte, 7)
		a     = make([]byte, 4)
		b     = make([]byte, 3)
	)
	Screen(key, whole)
	next := ScreenAt(key, a, 0)
	assert.Equal(t, 1, next)
	next = ScreenAt(key, b, next)
	assert.Equal(t, 1, next)
	assert.Equal(t, whole, append(a, b...))
}

func TestScreenAt_EmptyKey(t *testing.T) {
	buf := []byte{1, 2, 3}
	assert.Equal(t, 2, ScreenAt(nil, buf, 2))
	assert.Equal(t, []byte{1, 2, 3}, buf)
}
