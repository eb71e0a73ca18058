// Package statusbar describes slots in the platform status bar.
package statusbar

import (
	"fmt"

	"github.com/manifold/gallium/pkg/menu"
)

// Item is a status bar slot presenting Menu when clicked. The menu is
// owned by the slot once the item is created.
type Item struct {
	Width     int
	Title     string
	Highlight bool
	Menu      *menu.Menu
}

// New attaches m to a new slot. A nil menu gives a slot without a menu.
func New(width int, title string, highlight bool, m *menu.Menu) (*Item, error) {
	if width < 0 {
		return nil, fmt.Errorf("invalid status item width: %d", width)
	}
	if m != nil {
		if err := m.Attach(menu.OwnerStatusBar); err != nil {
			return nil, err
		}
	}
	return &Item{
		Width:     width,
		Title:     title,
		Highlight: highlight,
		Menu:      m,
	}, nil
}

func (i *Item) String() string {
	return fmt.Sprintf("StatusItem(%q, width=%d)", i.Title, i.Width)
}
