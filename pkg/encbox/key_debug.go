//go:build !release

package encbox

import "github.com/saylorsolutions/encbox/pkg/keys"

// Key returns the key currently used by the Box.
// This is only meant for tests and diagnostics, and isn't available in builds with the release tag.
func (b *Box[T]) Key() keys.Key {
	return b.keying.current()
}

// Key returns the key currently used by the container.
// This is only meant for tests and diagnostics, and isn't available in builds with the release tag.
func (s *Shared[T]) Key() keys.Key {
	return s.cell.keying.current()
}

// Key returns the key currently used by the Seq.
// This is only meant for tests and diagnostics, and isn't available in builds with the release tag.
func (s *Seq[E]) Key() keys.Key {
	return s.keying.current()
}

// Key returns the key currently used by the Ptr.
// This is only meant for tests and diagnostics, and isn't available in builds with the release tag.
func (p *Ptr[T]) Key() keys.WordKey {
	return p.keying.current()
}
