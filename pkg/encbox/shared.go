package encbox

import (
	"sync"
	"sync/atomic"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/saylorsolutions/encbox/pkg/xor"
)

type sharedCell[T any] struct {
	mu     sync.RWMutex
	keying keying
	data   *T
	refs   atomic.Int64
}

// Shared is a handle to a reference counted container.
// Every handle made with Clone shares the same stored value and key, and a Set through one handle is seen by a later Get through any other.
// Each handle should be released with Release when it's no longer needed.
// Handles must come from NewShared, EmptyShared, or Clone. The zero Shared fails with ErrNotConstructed.
type Shared[T any] struct {
	cell     *sharedCell[T]
	released atomic.Bool
}

// NewShared creates a Shared container holding value.
func NewShared[T any](value T, opts ...Opt) (*Shared[T], error) {
	s, err := newShared[T](opts)
	if err != nil {
		return nil, err
	}
	key := s.cell.keying.current()
	xor.Screen(key[:], bytesOf(&value))
	s.cell.data = &value
	return s, nil
}

// EmptyShared creates a Shared container with no value, keyed by tag.
// The first Set through any handle supplies the value.
func EmptyShared[T any](tag keys.Tag, opts ...Opt) (*Shared[T], error) {
	return newShared[T](append([]Opt{WithTag(tag)}, opts...))
}

func newShared[T any](opts []Opt) (*Shared[T], error) {
	if err := checkLayout[T](); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cell := &sharedCell[T]{keying: cfg.keying()}
	cell.refs.Store(1)
	return &Shared[T]{cell: cell}, nil
}

func (s *Shared[T]) live() (*sharedCell[T], error) {
	if s.cell == nil {
		return nil, ErrNotConstructed
	}
	if s.released.Load() {
		return nil, ErrReleased
	}
	return s.cell, nil
}

func (s *Shared[T]) mustLive() *sharedCell[T] {
	cell, err := s.live()
	if err != nil {
		panic(err)
	}
	return cell
}

// Clone creates a new handle to the same container.
// It panics if this handle has been released.
func (s *Shared[T]) Clone() *Shared[T] {
	cell := s.mustLive()
	cell.refs.Add(1)
	return &Shared[T]{cell: cell}
}

// Handles returns the number of handles that haven't been released.
func (s *Shared[T]) Handles() int64 {
	if s.cell == nil {
		return 0
	}
	return s.cell.refs.Load()
}

// Get returns a copy of the value.
// It panics if the container is empty or the handle has been released, use Load to get an error instead.
func (s *Shared[T]) Get() T {
	val, err := s.Load()
	if err != nil {
		panic(err)
	}
	return val
}

// Load returns a copy of the value.
// ErrReleased is returned if the handle has been released, and ErrUninitialized if the container is empty.
func (s *Shared[T]) Load() (T, error) {
	var out T
	cell, err := s.live()
	if err != nil {
		return out, err
	}
	cell.mu.RLock()
	if cell.data == nil {
		cell.mu.RUnlock()
		return out, ErrUninitialized
	}
	out = *cell.data
	cell.mu.RUnlock()

	key := cell.keying.current()
	xor.Screen(key[:], bytesOf(&out))
	return out, nil
}

// Set replaces the value, returning the previous value.
// The returned bool is false if the container was empty.
// Initializing an empty container is exclusive: when two handles race to set the first value, one of them sees the other's value as previous.
// It panics if the handle has been released.
func (s *Shared[T]) Set(value T) (previous T, loaded bool) {
	cell := s.mustLive()
	key := cell.keying.current()
	xor.Screen(key[:], bytesOf(&value))

	cell.mu.Lock()
	if cell.data == nil {
		cell.data = &value
		cell.mu.Unlock()
		return previous, false
	}
	*cell.data, value = value, *cell.data
	cell.mu.Unlock()

	xor.Screen(key[:], bytesOf(&value))
	return value, true
}

// Release gives up this handle. Releasing the last handle restores the stored value to plain text in place, and then wipes it.
// Releasing a handle more than once has no effect.
func (s *Shared[T]) Release() {
	if s.cell == nil {
		return
	}
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	cell := s.cell
	if cell.refs.Add(-1) > 0 {
		return
	}
	cell.mu.Lock()
	defer cell.mu.Unlock()
	if cell.data == nil {
		return
	}
	key := cell.keying.current()
	buf := bytesOf(cell.data)
	xor.Screen(key[:], buf)
	memguard.WipeBytes(buf)
	cell.data = nil
}
