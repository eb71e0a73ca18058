// Package systray is a toolkit on top of github.com/getlantern/systray.
//
// The platform tray hosts one status item. Keyboard shortcuts are shown in
// item tooltips since the tray has no key equivalents. When no status item
// is added, the main menu is presented in the tray instead. Run must be
// called from the main goroutine. The native loop keeps the main thread, so
// activation callbacks run on a separate locked thread, not the UI thread.
package systray

import (
	"context"
	"sync"

	"github.com/getlantern/systray"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/statusbar"
	"github.com/manifold/gallium/pkg/toolkit"
)

const separatorTitle = "────────"

type Toolkit struct {
	Logger logging.Logger

	// Icon is shown in the tray, PNG on macOS and Linux, ICO on Windows.
	Icon []byte

	mainMenu      *menu.Menu
	statusItem    *statusbar.Item
	uiApplication bool

	host        toolkit.Host
	cancel      context.CancelFunc
	root        *menu.Menu
	holders     map[*menu.Menu]*systray.MenuItem
	realized    map[*menu.Item]*systray.MenuItem
	activations chan *menu.Item
	running     bool
	mu          sync.Mutex
}

var _ toolkit.Toolkit = (*Toolkit)(nil)

func New(log logging.Logger) *Toolkit {
	return &Toolkit{
		Logger:      log,
		holders:     make(map[*menu.Menu]*systray.MenuItem),
		realized:    make(map[*menu.Item]*systray.MenuItem),
		activations: make(chan *menu.Item, 64),
	}
}

func (t *Toolkit) SetMainMenu(m *menu.Menu) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mainMenu = m
	return nil
}

// SetUIApplication is recorded only; the tray has no dock presence to
// toggle.
func (t *Toolkit) SetUIApplication() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uiApplication = true
	return nil
}

func (t *Toolkit) AddStatusItem(item *statusbar.Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.statusItem != nil {
		return toolkit.ErrUnsupported
	}
	t.statusItem = item
	if t.running && t.root == nil {
		t.present()
	}
	return nil
}

func (t *Toolkit) Deliver(n *notification.Notification) error {
	return deliver(n, t.Logger)
}

// Run enters the tray event loop and blocks until Quit.
func (t *Toolkit) Run(host toolkit.Host) error {
	t.mu.Lock()
	t.host = host
	t.mu.Unlock()
	systray.Run(t.onReady, t.onExit)
	return nil
}

func (t *Toolkit) Quit() {
	systray.Quit()
}

func (t *Toolkit) onReady() {
	ctx, cancel := context.WithCancel(context.Background())

	t.mu.Lock()
	t.cancel = cancel
	t.running = true
	if len(t.Icon) > 0 {
		systray.SetIcon(t.Icon)
	}
	t.present()
	host := t.host
	t.mu.Unlock()

	go host.Serve(ctx)
	go t.forward(ctx, host)
}

func (t *Toolkit) onExit() {
	t.mu.Lock()
	t.running = false
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// forward delivers activations in click order, one at a time.
func (t *Toolkit) forward(ctx context.Context, host toolkit.Host) {
	for {
		select {
		case item := <-t.activations:
			host.Activate(item)
		case <-ctx.Done():
			return
		}
	}
}

// present shows the status item, or the main menu when there is none.
// t.mu is held.
func (t *Toolkit) present() {
	var (
		title string
		m     *menu.Menu
	)
	switch {
	case t.statusItem != nil:
		title, m = t.statusItem.Title, t.statusItem.Menu
	case t.mainMenu != nil:
		title, m = t.mainMenu.Title(), t.mainMenu
	default:
		return
	}

	systray.SetTitle(title)
	systray.SetTooltip(title)
	if m == nil {
		return
	}
	t.root = m
	for _, item := range m.Items() {
		t.addItem(nil, item)
	}
	m.Observe(&menu.Observer{OnChange: t.onChange})
}

// onChange realizes items added to menus that are already shown.
func (t *Toolkit) onChange(changed *menu.Menu, path string, old, new interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch path {
	case "::Items":
		item := new.(*menu.Item)
		if changed == t.root {
			t.addItem(nil, item)
		} else if holder, ok := t.holders[changed]; ok {
			t.addItem(holder, item)
		}
	case "::Submenu":
		if prev, ok := old.(*menu.Menu); ok && prev != nil {
			t.hide(prev)
		}
		sub, ok := new.(*menu.Menu)
		if !ok || sub == nil {
			return
		}
		holder := t.realized[sub.Parent()]
		if holder == nil {
			return
		}
		t.holders[sub] = holder
		for _, item := range sub.Items() {
			t.addItem(holder, item)
		}
	}
}

func (t *Toolkit) addItem(parent *systray.MenuItem, item *menu.Item) {
	if item.IsSeparator() && parent == nil {
		systray.AddSeparator()
		return
	}

	tooltip := menu.FormatShortcut(item.Shortcut())
	var mi *systray.MenuItem
	if parent == nil {
		mi = systray.AddMenuItem(item.Title(), tooltip)
	} else if item.IsSeparator() {
		mi = parent.AddSubMenuItem(separatorTitle, "")
	} else {
		mi = parent.AddSubMenuItem(item.Title(), tooltip)
	}
	t.realized[item] = mi

	if item.IsSeparator() {
		mi.Disable()
		return
	}

	if sub := item.Submenu(); sub != nil {
		t.holders[sub] = mi
		for _, child := range sub.Items() {
			t.addItem(mi, child)
		}
	}

	go func(mi *systray.MenuItem, item *menu.Item) {
		for range mi.ClickedCh {
			t.activations <- item
		}
	}(mi, item)
}

func (t *Toolkit) hide(m *menu.Menu) {
	delete(t.holders, m)
	for _, item := range m.Items() {
		if mi, ok := t.realized[item]; ok {
			mi.Hide()
		}
	}
}
