package xor

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrZeroLengthKey = errors.New("asked to generate a 0-length key")
	ErrKeyGen        = errors.New("failed to read random key bytes")
)

// FillKey fills key with random bytes from the OS entropy pool.
// Filling a caller owned array avoids leaving another copy of the key on the heap.
func FillKey(key []byte) error {
	if len(key) == 0 {
		return ErrZeroLengthKey
	}
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		clear(key)
		return fmt.Errorf("%w: %w", ErrKeyGen, err)
	}
	return nil
}

// GenKey will generate an XOR key with the given length.
func GenKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrZeroLengthKey
	}
	key := make([]byte, length)
	if err := FillKey(key); err != nil {
		return nil, err
	}
	return key, nil
}

// GenKeyAndOffset will generate an XOR key with the given length, and a random offset within it.
func GenKeyAndOffset(length int) ([]byte, int, error) {
	key, err := GenKey(length)
	if err != nil {
		return nil, 0, err
	}
	var buf [4]byte
	if err := FillKey(buf[:]); err != nil {
		return nil, 0, err
	}
	return key, int(binary.BigEndian.Uint32(buf[:]) % uint32(length)), nil
}
