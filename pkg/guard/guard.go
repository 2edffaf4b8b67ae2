/*
Package guard provides a busy-wait reader/writer admission guard.

Many readers may hold admission at once, or one writer alone.
Waiting callers spin with a scheduler yield between checks, so admission should only be held for the time it takes to copy a value.
There is no queueing or fairness: a caller that never releases admission blocks everybody else indefinitely.
The Context variants of the Enter methods give up when the context is done, returning an error that wraps ErrAdmissionTimeout.
*/
package guard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
)

// ctxCheckInterval is how many spins happen between checks of a context.
const ctxCheckInterval = 64

var (
	ErrAdmissionTimeout = errors.New("admission timed out")
	ErrNotAdmitted      = errors.New("released admission that was not held")
)

// Guard is a pair of admission counters. The zero value is an idle Guard, ready to use.
// A Guard must not be copied after first use.
type Guard struct {
	readers atomic.Int32
	writers atomic.Int32
}

// Readers returns the number of readers currently admitted.
func (g *Guard) Readers() int32 {
	return g.readers.Load()
}

// Writing returns true if a writer has claimed admission.
func (g *Guard) Writing() bool {
	return g.writers.Load() != 0
}

// EnterRead waits until no writer holds admission, then admits a reader.
func (g *Guard) EnterRead() {
	_ = g.EnterReadContext(context.Background())
}

// EnterReadContext is like EnterRead, but stops waiting when ctx is done.
func (g *Guard) EnterReadContext(ctx context.Context) error {
	for spins := 1; ; spins++ {
		if g.writers.Load() == 0 {
			g.readers.Add(1)
			if g.writers.Load() == 0 {
				return nil
			}
			// A writer claimed the guard between the check and the increment.
			g.readers.Add(-1)
		}
		if err := pause(ctx, spins); err != nil {
			return err
		}
	}
}

// ExitRead releases a reader's admission.
func (g *Guard) ExitRead() {
	if g.readers.Add(-1) < 0 {
		g.readers.Add(1)
		panic(fmt.Errorf("%w: read", ErrNotAdmitted))
	}
}

// EnterWrite waits until no other reader or writer holds admission, then admits the caller as the only writer.
func (g *Guard) EnterWrite() {
	_ = g.EnterWriteContext(context.Background())
}

// EnterWriteContext is like EnterWrite, but stops waiting when ctx is done.
// A writer that times out waiting for readers to drain gives its claim back.
func (g *Guard) EnterWriteContext(ctx context.Context) error {
	spins := 1
	for ; !g.writers.CompareAndSwap(0, 1); spins++ {
		if err := pause(ctx, spins); err != nil {
			return err
		}
	}
	// New readers are held off from here, wait for current readers to leave.
	for ; g.readers.Load() != 0; spins++ {
		if err := pause(ctx, spins); err != nil {
			g.writers.Store(0)
			return err
		}
	}
	return nil
}

// ExitWrite releases the writer's admission.
func (g *Guard) ExitWrite() {
	if !g.writers.CompareAndSwap(1, 0) {
		panic(fmt.Errorf("%w: write", ErrNotAdmitted))
	}
}

func pause(ctx context.Context, spins int) error {
	if spins%ctxCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrAdmissionTimeout, err)
		}
	}
	runtime.Gosched()
	return nil
}
