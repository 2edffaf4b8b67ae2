/*
Package encbox provides containers that keep a value XOR screened in memory whenever it's not being accessed.

This is meant to defeat casual memory scanning and dumping of sensitive in-process values, like a score or a health counter that shouldn't be trivially found and edited.
It's NOT encryption: the screen is a reversible XOR stream, traded for negligible runtime overhead.

# Containers:
  - Box is exclusively owned and guarded by a busy-wait reader/writer guard.
  - Shared is a reference counted handle to a cell guarded by a sync.RWMutex. Clone it to share the value.
  - Seq holds a run of elements, screened as one continuous byte range. It's not safe for concurrent use.
  - Ptr keeps its value outside the Go heap, and screens the address of that value as well as the value itself.

Get returns a plain text copy of the value, and Set swaps in a new value and returns the previous one.
The stored bytes are only ever swapped ciphertext for ciphertext, and plain text only exists in the copies handed to the caller.

# Keys:

By default, each container draws a random key from keys.Shared.
Passing WithTag selects a deterministic key that is computed from the tag for every operation and never stored.
Only tagged containers may be created empty, in which case the first Set supplies the value.

# Payload types:

Values are screened in place, so the payload type must not contain pointers of any kind: no pointers, slices, strings, maps, channels, functions, or interfaces.
Numbers, bools, arrays, and structs made of these are fine.
Other types are rejected with ErrUnsupportedType when a container is created.
*/
package encbox
