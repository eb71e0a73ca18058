package config

import "github.com/manifold/gallium/pkg/menu"

// Binder returns the click handler for an action. It is not called for
// items without an action.
type Binder func(Action) func()

// MainMenu returns one spec per configured top-level menu.
func (c *Config) MainMenu(bind Binder) ([]menu.Spec, error) {
	specs := make([]menu.Spec, 0, len(c.Menus))
	for _, m := range c.Menus {
		entries, err := Entries(m.Items, bind)
		if err != nil {
			return nil, err
		}
		specs = append(specs, menu.Spec{Title: m.Title, Entries: entries})
	}
	return specs, nil
}

// StatusMenu returns the entries of the status bar menu.
func (c *Config) StatusMenu(bind Binder) ([]menu.Entry, error) {
	return Entries(c.Status.Items, bind)
}

// Entries converts items into menu entries.
func Entries(items []ItemConfig, bind Binder) ([]menu.Entry, error) {
	var entries []menu.Entry
	for _, item := range items {
		if len(item.Items) > 0 {
			sub, err := Entries(item.Items, bind)
			if err != nil {
				return nil, err
			}
			entries = append(entries, menu.Spec{Title: item.Title, Entries: sub})
			continue
		}
		action, err := item.Decode()
		if err != nil {
			return nil, err
		}
		var onClick func()
		if action != nil && bind != nil {
			onClick = bind(action)
		}
		entries = append(entries, menu.ItemSpec{
			Title:    item.Title,
			Shortcut: item.Shortcut,
			OnClick:  onClick,
		})
	}
	return entries, nil
}
