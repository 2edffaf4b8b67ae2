package keys

import (
	"encoding/binary"
	"errors"
	"reflect"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	KeySize     = 16
	WordKeySize = 8
)

var (
	ErrEmptyTag = errors.New("cannot use an empty tag")
)

// Key is the 16 byte key used for byte-wise screening.
type Key [KeySize]byte

// WordKey is the 8 byte key used when screening addresses.
type WordKey [WordKeySize]byte

// Tag names a deterministic keyspace.
type Tag string

// Validate returns ErrEmptyTag if the Tag is empty or only whitespace.
func (t Tag) Validate() error {
	if len(strings.TrimSpace(string(t))) == 0 {
		return ErrEmptyTag
	}
	return nil
}

// Key computes the 128-bit BLAKE2b digest of the Tag.
func (t Tag) Key() Key {
	h, err := blake2b.New(KeySize, nil)
	if err != nil {
		// Only returned for invalid digest sizes.
		panic(err)
	}
	_, _ = h.Write([]byte(t))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// WordKey folds the two halves of the Tag's Key together.
func (t Tag) WordKey() WordKey {
	k := t.Key()
	var w WordKey
	binary.LittleEndian.PutUint64(w[:], binary.LittleEndian.Uint64(k[:8])^binary.LittleEndian.Uint64(k[8:]))
	return w
}

// TypeTag creates a Tag from the package path and name of T.
// Every container given this Tag for the same T shares one key.
// Types with the same name declared in different functions of one package produce the same Tag, and so share a key too.
func TypeTag[T any]() Tag {
	t := reflect.TypeFor[T]()
	if len(t.PkgPath()) == 0 {
		return Tag(t.String())
	}
	return Tag(t.PkgPath() + "." + t.Name())
}
