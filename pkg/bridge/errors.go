package bridge

import (
	"errors"
	"fmt"

	"github.com/manifold/gallium/pkg/handle"
)

// ErrOwned is returned when releasing a handle whose object is owned by
// another object.
var ErrOwned = errors.New("object is owned by another object")

// Error is returned by every Bridge operation that fails.
type Error struct {
	// Op is the bridge operation, e.g. "SetSubmenu".
	Op string
	// Handle is the handle the operation failed on, if any.
	Handle handle.Handle
	Err    error
}

func (e *Error) Error() string {
	if e.Handle != 0 {
		return fmt.Sprintf("%s [handle %d]: %v", e.Op, e.Handle, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, h handle.Handle, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Handle: h, Err: err}
}
