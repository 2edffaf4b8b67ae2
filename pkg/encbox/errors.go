package encbox

import "errors"

var (
	ErrUninitialized   = errors.New("container has no value")
	ErrNotConstructed  = errors.New("container wasn't created with a constructor")
	ErrUnsupportedType = errors.New("type can't be screened in place")
	ErrReleased        = errors.New("shared handle has been released")
	ErrAlloc           = errors.New("failed to manage off-heap region")
)
