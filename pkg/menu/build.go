package menu

import (
	"fmt"

	"github.com/manifold/gallium/pkg/dispatch"
)

// Entry is either a Spec or an ItemSpec.
type Entry interface {
	entry()
}

// ItemSpec describes a clickable item.
type ItemSpec struct {
	Title    string
	Shortcut string
	OnClick  func()
}

func (ItemSpec) entry() {}

// Spec describes a submenu: an item titled Title opening a menu with the
// same title.
type Spec struct {
	Title   string
	Entries []Entry
}

func (Spec) entry() {}

// Build appends entries to parent, creating submenus for nested specs.
func Build(parent *Menu, entries ...Entry) error {
	for _, e := range entries {
		switch e := e.(type) {
		case Spec:
			item := parent.AddItem(e.Title, "", 0, dispatch.Callback{})
			sub := New(e.Title)
			if _, err := item.SetSubmenu(sub); err != nil {
				return err
			}
			if err := Build(sub, e.Entries...); err != nil {
				return err
			}
		case ItemSpec:
			var (
				key  string
				mods Modifier
				err  error
			)
			if e.Shortcut != "" {
				key, mods, err = ParseShortcut(e.Shortcut)
				if err != nil {
					return fmt.Errorf("item %q: %w", e.Title, err)
				}
			}
			parent.AddItem(e.Title, key, mods, dispatch.FromFunc(e.OnClick))
		default:
			return fmt.Errorf("unexpected menu entry: %T", e)
		}
	}
	return nil
}
