package encbox

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/encbox/pkg/guard"
	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/saylorsolutions/encbox/pkg/xor"
)

// Ptr is a container that keeps its value in a region of memory outside the Go heap.
// Both the value and the address of the region are screened with the same key, so the Ptr itself holds neither the value nor a usable pointer to it.
// Its methods are safe for concurrent use.
//
// A Ptr must be created with NewPtr or EmptyPtr, the zero Ptr fails with ErrNotConstructed.
// A Ptr should be destroyed with Destroy. A Ptr that becomes unreachable is destroyed by a finalizer.
type Ptr[T any] struct {
	keying wordKeying
	guard  guard.Guard
	addr   uintptr
	loaded bool
}

// NewPtr creates a Ptr holding value.
func NewPtr[T any](value T, opts ...Opt) (*Ptr[T], error) {
	p, err := newPtr[T](opts)
	if err != nil {
		return nil, err
	}
	if _, _, err := p.SetContext(context.Background(), value); err != nil {
		return nil, err
	}
	return p, nil
}

// EmptyPtr creates a Ptr with no value, keyed by tag.
// The first call to Set allocates the region and supplies the value.
func EmptyPtr[T any](tag keys.Tag, opts ...Opt) (*Ptr[T], error) {
	return newPtr[T](append([]Opt{WithTag(tag)}, opts...))
}

func newPtr[T any](opts []Opt) (*Ptr[T], error) {
	if err := checkLayout[T](); err != nil {
		return nil, err
	}
	if err := xor.AddressLadder.Check(int(unsafe.Sizeof(uintptr(0)))); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	p := &Ptr[T]{keying: cfg.wordKeying()}
	runtime.SetFinalizer(p, func(p *Ptr[T]) {
		_ = p.Destroy()
	})
	return p, nil
}

func regionSize[T any]() uintptr {
	var zero T
	return max(unsafe.Sizeof(zero), 1)
}

// regionPointer turns the address of a region back into a pointer.
// Regions come from allocRegion and live outside the Go heap (or, on the fallback platforms, are pinned and never moved), so the collector can't free or relocate them while the address is held as a plain integer.
// This is the one place a region address is converted, go vet's unsafe.Pointer warning here is expected.
func regionPointer(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}

func regionAt[T any](addr uintptr) *T {
	return (*T)(regionPointer(addr))
}

func regionBytes(addr, size uintptr) []byte {
	return unsafe.Slice((*byte)(regionPointer(addr)), size)
}

// screenAddr masks or unmasks an address in place.
func screenAddr(key *keys.WordKey, addr *uintptr) {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), unsafe.Sizeof(*addr))
	if err := xor.ScreenAligned(key[:], buf, xor.AddressLadder); err != nil {
		// The address size is checked when the Ptr is created.
		panic(err)
	}
}

// Get returns a copy of the value.
// It panics if the Ptr is empty, use Load to get an error instead.
func (p *Ptr[T]) Get() T {
	val, err := p.Load()
	if err != nil {
		panic(err)
	}
	return val
}

// Load returns a copy of the value, or ErrUninitialized if the Ptr is empty.
func (p *Ptr[T]) Load() (T, error) {
	return p.GetContext(context.Background())
}

// GetContext returns a copy of the value.
// An error wrapping guard.ErrAdmissionTimeout is returned if ctx is done before read admission is granted.
func (p *Ptr[T]) GetContext(ctx context.Context) (T, error) {
	var out T
	if err := p.keying.check(); err != nil {
		return out, err
	}
	key := p.keying.current()
	if err := p.guard.EnterReadContext(ctx); err != nil {
		return out, fmt.Errorf("failed to get value: %w", err)
	}
	if !p.loaded {
		p.guard.ExitRead()
		return out, ErrUninitialized
	}
	addr := p.addr
	screenAddr(&key, &addr)
	out = *regionAt[T](addr)
	p.guard.ExitRead()

	xor.Screen(key[:], bytesOf(&out))
	return out, nil
}

// Set replaces the value, returning the previous value.
// The returned bool is false if the Ptr was empty.
// It panics if the Ptr is a zero Ptr or the region for an empty Ptr can't be allocated, use SetContext to get an error instead.
func (p *Ptr[T]) Set(value T) (previous T, loaded bool) {
	previous, loaded, err := p.SetContext(context.Background(), value)
	if err != nil {
		panic(err)
	}
	return previous, loaded
}

// SetContext is like Set, but gives up if ctx is done before write admission is granted.
// The stored value is unchanged when an error is returned.
func (p *Ptr[T]) SetContext(ctx context.Context, value T) (previous T, loaded bool, err error) {
	if err := p.keying.check(); err != nil {
		return previous, false, err
	}
	key := p.keying.current()
	xor.Screen(key[:], bytesOf(&value))
	if err := p.guard.EnterWriteContext(ctx); err != nil {
		return previous, false, fmt.Errorf("failed to set value: %w", err)
	}
	if !p.loaded {
		addr, err := allocRegion(regionSize[T]())
		if err != nil {
			p.guard.ExitWrite()
			return previous, false, err
		}
		*regionAt[T](addr) = value
		screenAddr(&key, &addr)
		p.addr = addr
		p.loaded = true
		p.guard.ExitWrite()
		return previous, false, nil
	}
	addr := p.addr
	screenAddr(&key, &addr)
	slot := regionAt[T](addr)
	*slot, value = value, *slot
	p.guard.ExitWrite()

	xor.Screen(key[:], bytesOf(&value))
	return value, true, nil
}

// Destroy restores the stored value to plain text in place, wipes it, and releases the region.
// The Ptr is empty afterward.
func (p *Ptr[T]) Destroy() error {
	p.guard.EnterWrite()
	defer p.guard.ExitWrite()
	if !p.loaded {
		return nil
	}
	key := p.keying.current()
	addr := p.addr
	screenAddr(&key, &addr)
	size := regionSize[T]()
	buf := regionBytes(addr, size)
	xor.Screen(key[:], buf)
	memguard.WipeBytes(buf)
	p.addr = 0
	p.loaded = false
	return freeRegion(addr, size)
}
