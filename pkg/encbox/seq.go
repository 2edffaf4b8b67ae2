package encbox

import (
	"bytes"
	"io"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/saylorsolutions/encbox/pkg/xor"
)

var _ io.WriterTo = (*Seq[byte])(nil)

// Seq is a container for a run of elements of any length.
// The run is screened as one flat range of bytes, so the key stream continues across element boundaries.
// A Seq is not safe for concurrent use, callers must serialize access.
// A Seq must be created with NewSeq or EmptySeq, the zero Seq fails with ErrNotConstructed.
type Seq[E any] struct {
	keying keying
	data   []E
}

// NewSeq creates a Seq holding a copy of elems.
func NewSeq[E any](elems []E, opts ...Opt) (*Seq[E], error) {
	s, err := newSeq[E](opts)
	if err != nil {
		return nil, err
	}
	s.data = s.seal(elems)
	return s, nil
}

// EmptySeq creates a Seq with no value, keyed by tag.
// The first call to Set supplies the elements.
func EmptySeq[E any](tag keys.Tag, opts ...Opt) (*Seq[E], error) {
	return newSeq[E](append([]Opt{WithTag(tag)}, opts...))
}

func newSeq[E any](opts []Opt) (*Seq[E], error) {
	if err := checkLayout[E](); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Seq[E]{keying: cfg.keying()}, nil
}

// seal copies elems into a new buffer owned by the Seq, and screens it.
func (s *Seq[E]) seal(elems []E) []E {
	owned := make([]E, len(elems))
	copy(owned, elems)
	key := s.keying.current()
	xor.Screen(key[:], bytesOfSlice(owned))
	return owned
}

// Len returns the number of elements held.
func (s *Seq[E]) Len() int {
	return len(s.data)
}

// Get returns a copy of the elements.
// It panics if the Seq is empty, use Load to get an error instead.
func (s *Seq[E]) Get() []E {
	elems, err := s.Load()
	if err != nil {
		panic(err)
	}
	return elems
}

// Load returns a copy of the elements, or ErrUninitialized if the Seq is empty.
func (s *Seq[E]) Load() ([]E, error) {
	if err := s.keying.check(); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, ErrUninitialized
	}
	out := make([]E, len(s.data))
	copy(out, s.data)
	key := s.keying.current()
	xor.Screen(key[:], bytesOfSlice(out))
	return out, nil
}

// Set replaces all elements with a copy of elems, returning the previous elements.
// The returned bool is false if the Seq was empty.
// It panics with ErrNotConstructed on a zero Seq.
func (s *Seq[E]) Set(elems []E) (previous []E, loaded bool) {
	if err := s.keying.check(); err != nil {
		panic(err)
	}
	sealed := s.seal(elems)
	previous, s.data = s.data, sealed
	if previous == nil {
		return nil, false
	}
	key := s.keying.current()
	xor.Screen(key[:], bytesOfSlice(previous))
	return previous, true
}

// snapshot copies the screened bytes of the Seq.
func (s *Seq[E]) snapshot() ([]byte, error) {
	if err := s.keying.check(); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, ErrUninitialized
	}
	return bytes.Clone(bytesOfSlice(s.data)), nil
}

// Reader returns an io.Reader that produces the plain text bytes of the elements as they are at the time of the call.
func (s *Seq[E]) Reader() (io.Reader, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	key := s.keying.current()
	return xor.NewReader(bytes.NewReader(snap), key[:])
}

// WriteTo writes the plain text bytes of the elements to w.
func (s *Seq[E]) WriteTo(w io.Writer) (int64, error) {
	snap, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	key := s.keying.current()
	xw, err := xor.NewWriter(w, key[:])
	if err != nil {
		return 0, err
	}
	n, err := xw.Write(snap)
	return int64(n), err
}

// Destroy restores the elements to plain text in place, and then wipes them.
// The Seq is empty afterward.
func (s *Seq[E]) Destroy() {
	if s.data == nil {
		return
	}
	key := s.keying.current()
	buf := bytesOfSlice(s.data)
	xor.Screen(key[:], buf)
	memguard.WipeBytes(buf)
	s.data = nil
}
