package dispatch

import "unsafe"

// Func is a callback taking one opaque pointer.
type Func func(arg unsafe.Pointer)

// Callback pairs a Func with the argument it is always called with.
// The argument is never read or modified by the bridge.
type Callback struct {
	Fn  Func
	Arg unsafe.Pointer
}

// NewCallback wraps fn and arg. A nil fn yields the zero Callback.
func NewCallback(fn Func, arg unsafe.Pointer) Callback {
	if fn == nil {
		return Callback{}
	}
	return Callback{Fn: fn, Arg: arg}
}

// FromFunc adapts a plain Go closure. The stored argument is nil.
func FromFunc(fn func()) Callback {
	if fn == nil {
		return Callback{}
	}
	return Callback{Fn: func(unsafe.Pointer) { fn() }}
}

// IsZero reports whether there is nothing to invoke.
func (c Callback) IsZero() bool {
	return c.Fn == nil
}

func (c Callback) invoke() {
	c.Fn(c.Arg)
}
