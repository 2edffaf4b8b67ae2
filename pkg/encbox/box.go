package encbox

import (
	"context"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/encbox/pkg/guard"
	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/saylorsolutions/encbox/pkg/xor"
)

// Box is an exclusively owned container.
// Its methods are safe for concurrent use, admission to the stored value is controlled by a guard.Guard.
//
// A Box must be created with New or Empty. The zero Box has no key, and its methods fail with ErrNotConstructed.
type Box[T any] struct {
	keying keying
	guard  guard.Guard
	data   *T
}

// New creates a Box holding value.
func New[T any](value T, opts ...Opt) (*Box[T], error) {
	b, err := newBox[T](opts)
	if err != nil {
		return nil, err
	}
	key := b.keying.current()
	xor.Screen(key[:], bytesOf(&value))
	b.data = &value
	return b, nil
}

// Empty creates a Box with no value, keyed by tag.
// The first call to Set supplies the value.
func Empty[T any](tag keys.Tag, opts ...Opt) (*Box[T], error) {
	return newBox[T](append([]Opt{WithTag(tag)}, opts...))
}

func newBox[T any](opts []Opt) (*Box[T], error) {
	if err := checkLayout[T](); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Box[T]{keying: cfg.keying()}, nil
}

// Get returns a copy of the value.
// It panics if the Box is empty, use Load to get an error instead.
func (b *Box[T]) Get() T {
	val, err := b.Load()
	if err != nil {
		panic(err)
	}
	return val
}

// Load returns a copy of the value, or ErrUninitialized if the Box is empty.
func (b *Box[T]) Load() (T, error) {
	return b.GetContext(context.Background())
}

// GetContext returns a copy of the value.
// An error wrapping guard.ErrAdmissionTimeout is returned if ctx is done before read admission is granted.
func (b *Box[T]) GetContext(ctx context.Context) (T, error) {
	var out T
	if err := b.keying.check(); err != nil {
		return out, err
	}
	if err := b.guard.EnterReadContext(ctx); err != nil {
		return out, fmt.Errorf("failed to get value: %w", err)
	}
	if b.data == nil {
		b.guard.ExitRead()
		return out, ErrUninitialized
	}
	out = *b.data
	b.guard.ExitRead()

	key := b.keying.current()
	xor.Screen(key[:], bytesOf(&out))
	return out, nil
}

// Set replaces the value, returning the previous value.
// The returned bool is false if the Box was empty.
// It panics with ErrNotConstructed on a zero Box.
func (b *Box[T]) Set(value T) (previous T, loaded bool) {
	previous, loaded, err := b.SetContext(context.Background(), value)
	if err != nil {
		panic(err)
	}
	return previous, loaded
}

// SetContext is like Set, but gives up if ctx is done before write admission is granted.
// The stored value is unchanged when an error is returned.
func (b *Box[T]) SetContext(ctx context.Context, value T) (previous T, loaded bool, err error) {
	if err := b.keying.check(); err != nil {
		return previous, false, err
	}
	key := b.keying.current()
	xor.Screen(key[:], bytesOf(&value))
	if err := b.guard.EnterWriteContext(ctx); err != nil {
		return previous, false, fmt.Errorf("failed to set value: %w", err)
	}
	if b.data == nil {
		b.data = &value
		b.guard.ExitWrite()
		return previous, false, nil
	}
	*b.data, value = value, *b.data
	b.guard.ExitWrite()

	xor.Screen(key[:], bytesOf(&value))
	return value, true, nil
}

// Destroy restores the stored value to plain text in place, and then wipes it.
// The Box is empty afterward.
func (b *Box[T]) Destroy() {
	b.guard.EnterWrite()
	defer b.guard.ExitWrite()
	if b.data == nil {
		return
	}
	key := b.keying.current()
	buf := bytesOf(b.data)
	xor.Screen(key[:], buf)
	memguard.WipeBytes(buf)
	b.data = nil
}
