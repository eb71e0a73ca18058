// Package menu builds trees of menus and menu items.
//
// A Menu is owned by its creator until it is attached somewhere: as the
// submenu of an Item, as the application main menu, or to a status bar
// slot. An attached menu has exactly one owner and a menu can never become
// its own ancestor. The tree is not safe for concurrent mutation; callers
// build it from one goroutine.
package menu

import (
	"errors"
	"fmt"

	"github.com/manifold/gallium/pkg/dispatch"
)

var (
	ErrCycle    = errors.New("menu would become its own ancestor")
	ErrAttached = errors.New("menu is already attached")
)

// Separator is the item title rendered as a separator line.
const Separator = "-"

// Owner describes who currently owns a Menu.
type Owner int

const (
	OwnerCaller Owner = iota
	OwnerItem
	OwnerApplication
	OwnerStatusBar
)

func (o Owner) String() string {
	switch o {
	case OwnerItem:
		return "item"
	case OwnerApplication:
		return "application"
	case OwnerStatusBar:
		return "statusbar"
	default:
		return "caller"
	}
}

type Menu struct {
	title     string
	items     []*Item
	parent    *Item
	owner     Owner
	observers map[*Observer]struct{}
}

// New returns an empty menu owned by the caller.
func New(title string) *Menu {
	return &Menu{
		title:     title,
		observers: make(map[*Observer]struct{}),
	}
}

func (m *Menu) Title() string {
	return m.title
}

// Items returns the items in display order.
func (m *Menu) Items() []*Item {
	items := make([]*Item, len(m.items))
	copy(items, m.items)
	return items
}

// ItemAt returns the item at idx or nil. An index of -1 returns the last item.
func (m *Menu) ItemAt(idx int) *Item {
	if idx == -1 {
		idx = len(m.items) - 1
	}
	if idx > -1 && len(m.items) > idx {
		return m.items[idx]
	}
	return nil
}

func (m *Menu) Len() int {
	return len(m.items)
}

// Parent returns the item this menu is the submenu of, if any.
func (m *Menu) Parent() *Item {
	return m.parent
}

func (m *Menu) Owner() Owner {
	return m.owner
}

// AddItem appends a new item. The modifier mask only matters when key is
// not empty.
func (m *Menu) AddItem(title, key string, mods Modifier, cb dispatch.Callback) *Item {
	item := &Item{
		title:    title,
		key:      key,
		mods:     mods,
		callback: cb,
		menu:     m,
	}
	m.items = append(m.items, item)
	notify(m, m, "::Items", nil, item)
	return item
}

// AddSeparator appends a separator item.
func (m *Menu) AddSeparator() *Item {
	return m.AddItem(Separator, "", 0, dispatch.Callback{})
}

// Attach hands the menu to a top-level owner.
func (m *Menu) Attach(owner Owner) error {
	if owner == OwnerCaller || owner == OwnerItem {
		return fmt.Errorf("cannot attach menu %q to %s", m.title, owner)
	}
	if m.owner != OwnerCaller {
		return fmt.Errorf("%w: %q is owned by %s", ErrAttached, m.title, m.owner)
	}
	m.setOwner(owner)
	return nil
}

// Detach returns a top-level attached menu to the caller. Submenus are
// detached through their item with SetSubmenu(nil).
func (m *Menu) Detach() {
	if m.owner == OwnerItem {
		return
	}
	m.setOwner(OwnerCaller)
}

func (m *Menu) setOwner(owner Owner) {
	old := m.owner
	if old != owner {
		m.owner = owner
		notify(m, m, "::Owner", old, owner)
	}
}

// Contains reports whether sub is m or appears anywhere below m.
func (m *Menu) Contains(sub *Menu) bool {
	if m == sub {
		return true
	}
	for _, item := range m.items {
		if item.submenu != nil && item.submenu.Contains(sub) {
			return true
		}
	}
	return false
}

func (m *Menu) String() string {
	return fmt.Sprintf("Menu(%q, %d items, %s)", m.title, len(m.items), m.owner)
}

// Walk calls fn for every item below m, depth first in display order.
func Walk(m *Menu, fn func(*Item)) {
	for _, item := range m.items {
		fn(item)
		if item.submenu != nil {
			Walk(item.submenu, fn)
		}
	}
}
