package menu

import "strings"

// Observer is notified of changes to a menu or any menu below it.
type Observer struct {
	// Path is a prefix filter on change paths ("::Items", "::Submenu",
	// "::Owner"). If blank, every change is delivered.
	Path string

	// OnChange gets the menu that changed, the path of the change, and the
	// old and new values.
	OnChange func(changed *Menu, path string, old, new interface{})
}

// Observe registers an observer with the menu.
func (m *Menu) Observe(obs *Observer) {
	m.observers[obs] = struct{}{}
}

// Unobserve unregisters an observer.
func (m *Menu) Unobserve(obs *Observer) {
	delete(m.observers, obs)
}

func notify(sender *Menu, changed *Menu, path string, old, new interface{}) {
	for obs := range sender.observers {
		if strings.HasPrefix(path, obs.Path) {
			obs.OnChange(changed, path, old, new)
		}
	}

	if sender.parent == nil || sender.parent.menu == nil {
		return
	}
	notify(sender.parent.menu, changed, path, old, new)
}
