package bridge

import (
	"github.com/manifold/gallium/pkg/handle"
	"github.com/manifold/gallium/pkg/image"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
)

// SetMenu builds a root menu with one submenu per spec and installs it as
// the main menu. On failure the built tree is released.
func (b *Bridge) SetMenu(menus []menu.Spec) (Handle, error) {
	entries := make([]menu.Entry, len(menus))
	for i, m := range menus {
		entries[i] = m
	}
	root, err := b.build("<root>", entries)
	if err != nil {
		return 0, opError("SetMenu", 0, err)
	}
	if err := b.SetMainMenu(root); err != nil {
		b.Release(root)
		return 0, err
	}
	return root, nil
}

// AddStatusMenu builds a menu from entries and shows it in a new status
// bar slot. On failure the built tree is released.
func (b *Bridge) AddStatusMenu(width int, title string, highlight bool, entries ...menu.Entry) (Handle, error) {
	root, err := b.build("<statusbar>", entries)
	if err != nil {
		return 0, opError("AddStatusMenu", 0, err)
	}
	h, err := b.AddStatusItem(width, title, highlight, root)
	if err != nil {
		b.Release(root)
		return 0, err
	}
	return h, nil
}

// Post builds and delivers a notification in one call.
func (b *Bridge) Post(title, subtitle, informativeText string, img *image.Image) error {
	n := notification.New(title, subtitle, informativeText, img, "", false, false, "", "")
	return opError("Post", 0, b.center.Deliver(n))
}

// build creates a menu from entries and registers every menu and item in
// the new tree.
func (b *Bridge) build(title string, entries []menu.Entry) (Handle, error) {
	root := menu.New(title)
	if err := menu.Build(root, entries...); err != nil {
		return 0, err
	}
	h := b.handles.Put(handle.KindMenu, root)
	menu.Walk(root, func(item *menu.Item) {
		b.handles.Put(handle.KindMenuItem, item)
		if sub := item.Submenu(); sub != nil {
			b.handles.Put(handle.KindMenu, sub)
		}
	})
	return h, nil
}
