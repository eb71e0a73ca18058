// Package handle tracks opaque identities for objects created through the
// bridge. A Handle is a pointer-sized token; the zero Handle is never issued.
package handle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/manifold/gallium/pkg/logging"
)

var (
	ErrInvalid = errors.New("invalid handle")
	ErrKind    = errors.New("handle refers to a different kind of object")
)

// Handle is an opaque identifier for an object in a Table.
type Handle uintptr

// Kind identifies what a Handle refers to.
type Kind int

const (
	KindUnknown Kind = iota
	KindMenu
	KindMenuItem
	KindStatusItem
	KindNotification
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindMenuItem:
		return "menuitem"
	case KindStatusItem:
		return "statusitem"
	case KindNotification:
		return "notification"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

type entry struct {
	kind  Kind
	value interface{}
}

// Table maps handles to the objects they identify. Handles are allocated
// in increasing order and never reused for the lifetime of a Table.
type Table struct {
	Logger logging.DebugLogger

	entries map[Handle]entry
	refs    map[interface{}]Handle
	next    Handle
	mu      sync.RWMutex
}

func NewTable() *Table {
	return &Table{
		entries: make(map[Handle]entry),
		refs:    make(map[interface{}]Handle),
	}
}

// Put registers v and returns its handle. Registering the same pointer
// twice returns the handle it already has.
func (t *Table) Put(kind Kind, v interface{}) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.refs[v]; ok {
		return h
	}
	t.next++
	h := t.next
	t.entries[h] = entry{kind: kind, value: v}
	t.refs[v] = h
	logging.Debugf(t.Logger, "handle: put %s %d", kind, h)
	return h
}

// Get returns the object behind h, which must be of the given kind.
func (t *Table) Get(h Handle, kind Kind) (interface{}, error) {
	t.mu.RLock()
	e, ok := t.entries[h]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalid, h)
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %d is a %s, not a %s", ErrKind, h, e.kind, kind)
	}
	return e.value, nil
}

// Kind returns the kind of object h refers to, or KindUnknown.
func (t *Table) Kind(h Handle) Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.entries[h].kind
}

// Lookup returns the handle already issued for v.
func (t *Table) Lookup(v interface{}) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.refs[v]
	return h, ok
}

// Delete releases h. The object itself is not touched.
func (t *Table) Delete(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalid, h)
	}
	delete(t.entries, h)
	delete(t.refs, e.value)
	logging.Debugf(t.Logger, "handle: delete %s %d", e.kind, h)
	return nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
