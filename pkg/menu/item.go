package menu

import (
	"fmt"

	"github.com/manifold/gallium/pkg/dispatch"
)

type Item struct {
	title    string
	key      string
	mods     Modifier
	callback dispatch.Callback
	menu     *Menu
	submenu  *Menu
}

func (i *Item) Title() string {
	return i.title
}

// Shortcut returns the key and modifiers. Modifiers are dropped when
// there is no key.
func (i *Item) Shortcut() (string, Modifier) {
	if i.key == "" {
		return "", 0
	}
	return i.key, i.mods
}

func (i *Item) Key() string {
	return i.key
}

func (i *Item) Modifiers() Modifier {
	return i.mods
}

// Callback returns the callback given when the item was added.
func (i *Item) Callback() dispatch.Callback {
	return i.callback
}

// Menu returns the menu containing the item.
func (i *Item) Menu() *Menu {
	return i.menu
}

func (i *Item) Submenu() *Menu {
	return i.submenu
}

func (i *Item) IsSeparator() bool {
	return i.title == Separator
}

// SetSubmenu makes sub the child menu of the item and returns the menu it
// replaces, which is handed back to the caller. A nil sub detaches the
// current submenu.
func (i *Item) SetSubmenu(sub *Menu) (prev *Menu, err error) {
	if sub != nil && sub != i.submenu {
		if sub.owner != OwnerCaller {
			return nil, fmt.Errorf("%w: %q is owned by %s", ErrAttached, sub.title, sub.owner)
		}
		for m := i.menu; m != nil; {
			if m == sub {
				return nil, fmt.Errorf("%w: %q under item %q", ErrCycle, sub.title, i.title)
			}
			if m.parent == nil {
				break
			}
			m = m.parent.menu
		}
	}

	prev = i.submenu
	if prev == sub {
		return nil, nil
	}
	if prev != nil {
		prev.parent = nil
		prev.setOwner(OwnerCaller)
	}
	i.submenu = sub
	if sub != nil {
		sub.parent = i
		sub.setOwner(OwnerItem)
	}
	if i.menu != nil {
		notify(i.menu, i.menu, "::Submenu", prev, sub)
	}
	return prev, nil
}

func (i *Item) String() string {
	if s := FormatShortcut(i.key, i.mods); s != "" {
		return fmt.Sprintf("Item(%q, %s)", i.title, s)
	}
	return fmt.Sprintf("Item(%q)", i.title)
}
