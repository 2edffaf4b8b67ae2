package keys

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"sync"

	bin "github.com/saylorsolutions/binmap"
	"github.com/saylorsolutions/encbox/pkg/xor"
)

const (
	seedLen   = 32
	mixFactor = 0x9e3779b97f4a7c15
)

var (
	ErrSeed = errors.New("failed to seed random source")
)

// Source is a random generator that is safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.ChaCha8
	mix uint64
}

// NewSource creates a Source seeded from the OS entropy pool.
func NewSource() (*Source, error) {
	var s [seedLen]byte
	if err := xor.FillKey(s[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeed, err)
	}
	src := &Source{
		rng: rand.NewChaCha8(s),
		mix: Cycles(),
	}
	clear(s[:])
	return src, nil
}

// Uint64 draws the next value.
// The mixer is advanced with a cycle counter sample on every draw.
func (s *Source) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mix = bits.RotateLeft64(s.mix^Cycles(), 23) * mixFactor
	return s.rng.Uint64() ^ s.mix
}

// Key creates a new random Key.
func (s *Source) Key() Key {
	var (
		k Key
		a = Cycles() ^ s.Uint64()
		b = Cycles() ^ s.Uint64()
	)
	fold(k[:], &a, &b)
	return k
}

// WordKey creates a new random WordKey.
func (s *Source) WordKey() WordKey {
	var (
		k WordKey
		a = Cycles() ^ s.Uint64()
	)
	fold(k[:], &a)
	return k
}

func fold(dst []byte, words ...*uint64) {
	var buf bytes.Buffer
	mappers := make([]bin.Mapper, len(words))
	for i, w := range words {
		mappers[i] = bin.Int(w)
	}
	// Writes to a bytes.Buffer don't fail.
	_ = bin.MapSequence(mappers...).Write(&buf, binary.LittleEndian)
	copy(dst, buf.Bytes())
	clear(buf.Bytes())
	for _, w := range words {
		*w = 0
	}
}

var (
	sharedOnce sync.Once
	shared     *Source
	sharedErr  error
)

// Init creates the Source returned by Shared if it doesn't exist yet.
// Calling it at startup surfaces seeding errors early, instead of as a panic from Shared.
func Init() error {
	sharedOnce.Do(func() {
		shared, sharedErr = NewSource()
	})
	return sharedErr
}

// Shared returns the process-wide Source, creating it if necessary.
// It panics if the Source could not be seeded.
func Shared() *Source {
	if err := Init(); err != nil {
		panic(err)
	}
	return shared
}
