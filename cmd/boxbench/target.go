package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/saylorsolutions/encbox/pkg/encbox"
	"github.com/saylorsolutions/encbox/pkg/keys"
)

// payload is always written with every element equal, so a read with unequal elements is torn.
type payload = [8]uint64

func uniform(v uint64) payload {
	return payload{v, v, v, v, v, v, v, v}
}

func torn(p payload) bool {
	for _, e := range p[1:] {
		if e != p[0] {
			return true
		}
	}
	return false
}

// handle is one worker's access to the container under test.
type handle interface {
	get(ctx context.Context) (payload, error)
	set(ctx context.Context, p payload) error
	release()
}

// target is the container under test, handing out a handle per worker.
type target interface {
	handle() handle
	close() error
}

var ErrUnknownVariant = errors.New("unknown container variant")

func newTarget(variant string, tag keys.Tag) (target, error) {
	var opts []encbox.Opt
	if len(tag) > 0 {
		opts = append(opts, encbox.WithTag(tag))
	}
	switch variant {
	case "box":
		b, err := encbox.New(uniform(0), opts...)
		if err != nil {
			return nil, err
		}
		return &boxTarget{box: b}, nil
	case "shared":
		s, err := encbox.NewShared(uniform(0), opts...)
		if err != nil {
			return nil, err
		}
		return &sharedTarget{root: s}, nil
	case "ptr":
		p, err := encbox.NewPtr(uniform(0), opts...)
		if err != nil {
			return nil, err
		}
		return &ptrTarget{ptr: p}, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownVariant, variant)
	}
}

type boxTarget struct {
	box *encbox.Box[payload]
}

func (t *boxTarget) handle() handle { return t }
func (t *boxTarget) release()       {}

func (t *boxTarget) get(ctx context.Context) (payload, error) {
	return t.box.GetContext(ctx)
}

func (t *boxTarget) set(ctx context.Context, p payload) error {
	_, _, err := t.box.SetContext(ctx, p)
	return err
}

func (t *boxTarget) close() error {
	t.box.Destroy()
	return nil
}

type sharedTarget struct {
	root *encbox.Shared[payload]
}

func (t *sharedTarget) handle() handle {
	return sharedHandle{t.root.Clone()}
}

func (t *sharedTarget) close() error {
	t.root.Release()
	return nil
}

// sharedHandle ignores contexts, a Shared container waits on its lock instead.
type sharedHandle struct {
	s *encbox.Shared[payload]
}

func (h sharedHandle) get(context.Context) (payload, error) {
	return h.s.Load()
}

func (h sharedHandle) set(_ context.Context, p payload) error {
	h.s.Set(p)
	return nil
}

func (h sharedHandle) release() {
	h.s.Release()
}

type ptrTarget struct {
	ptr *encbox.Ptr[payload]
}

func (t *ptrTarget) handle() handle { return t }
func (t *ptrTarget) release()       {}

func (t *ptrTarget) get(ctx context.Context) (payload, error) {
	return t.ptr.GetContext(ctx)
}

func (t *ptrTarget) set(ctx context.Context, p payload) error {
	_, _, err := t.ptr.SetContext(ctx, p)
	return err
}

func (t *ptrTarget) close() error {
	return t.ptr.Destroy()
}
