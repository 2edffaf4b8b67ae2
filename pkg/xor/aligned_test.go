package xor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alignedKey = []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}

func TestScreenAligned_Word(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, ScreenAligned(alignedKey, buf, WordLadder))
	for i := range buf {
		assert.Equal(t, byte(i+1)^alignedKey[i], buf[i])
	}
	require.NoError(t, ScreenAligned(alignedKey, buf, WordLadder))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf)
}

func TestScreenAligned_ChunksFromEnd(t *testing.T) {
	// 12 bytes: the trailing 4 use key[:4], then the leading 8 use key[:8].
	buf := make([]byte, 12)
	require.NoError(t, ScreenAligned(alignedKey, buf, WordLadder))
	assert.Equal(t, alignedKey, buf[:8])
	assert.Equal(t, alignedKey[:4], buf[8:])
}

func TestScreenAligned_OddSizes(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5, 7, 9, 15} {
		buf := make([]byte, size)
		require.NoError(t, ScreenAligned(alignedKey, buf, WordLadder), "size %d", size)
		assert.NotEqual(t, make([]byte, size), buf, "size %d", size)
		require.NoError(t, ScreenAligned(alignedKey, buf, WordLadder), "size %d", size)
		assert.Equal(t, make([]byte, size), buf, "size %d", size)
	}
}

func TestScreenAligned_Unsupported(t *testing.T) {
	buf := []byte{1, 2, 3}
	err := ScreenAligned(alignedKey, buf, AddressLadder)
	assert.ErrorIs(t, err, ErrUnsupportedSize)
	assert.Equal(t, []byte{1, 2, 3}, buf, "Buffer must be untouched on failure")

	buf = make([]byte, 7)
	assert.ErrorIs(t, ScreenAligned(alignedKey, buf, AddressLadder), ErrUnsupportedSize)
	assert.Equal(t, make([]byte, 7), buf)
}

func TestScreenAligned_ShortKey(t *testing.T) {
	// A 4 byte key never allows 8 byte chunks.
	buf := make([]byte, 8)
	require.NoError(t, ScreenAligned(alignedKey[:4], buf, AddressLadder))
	assert.Equal(t, append(alignedKey[:4:4], alignedKey[:4]...), buf)

	assert.ErrorIs(t, ScreenAligned(alignedKey[:2], buf, AddressLadder), ErrUnsupportedSize)
	assert.ErrorIs(t, ScreenAligned(nil, buf, AddressLadder), ErrEmptyKey)
}

func TestLadder_Check(t *testing.T) {
	assert.NoError(t, AddressLadder.Check(8))
	assert.NoError(t, AddressLadder.Check(4))
	assert.NoError(t, AddressLadder.Check(12))
	assert.NoError(t, AddressLadder.Check(0))
	assert.ErrorIs(t, AddressLadder.Check(3), ErrUnsupportedSize)
	assert.ErrorIs(t, AddressLadder.Check(6), ErrUnsupportedSize)
	assert.ErrorIs(t, AddressLadder.Check(-1), ErrUnsupportedSize)
	assert.NoError(t, WordLadder.Check(3))
	assert.ErrorIs(t, Ladder{3}.Check(3), ErrUnsupportedSize, "Widths outside 8/4/2/1 are ignored")
}
