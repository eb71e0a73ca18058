// Package headless is a toolkit without a display. It records what would
// have been shown and lets activations be simulated.
package headless

import (
	"context"
	"errors"
	"sync"

	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/statusbar"
	"github.com/manifold/gallium/pkg/toolkit"
)

var ErrNotRunning = errors.New("toolkit is not running")

type Toolkit struct {
	Logger logging.DebugLogger

	mainMenu      *menu.Menu
	uiApplication bool
	statusItems   []*statusbar.Item
	notifications []*notification.Notification

	host    toolkit.Host
	cancel  context.CancelFunc
	ready   chan struct{}
	running bool
	quit    bool
	mu      sync.Mutex
}

var _ toolkit.Toolkit = (*Toolkit)(nil)

func New() *Toolkit {
	return &Toolkit{ready: make(chan struct{})}
}

func (t *Toolkit) SetMainMenu(m *menu.Menu) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mainMenu = m
	return nil
}

func (t *Toolkit) SetUIApplication() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uiApplication = true
	return nil
}

func (t *Toolkit) AddStatusItem(item *statusbar.Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statusItems = append(t.statusItems, item)
	return nil
}

func (t *Toolkit) Deliver(n *notification.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifications = append(t.notifications, n)
	logging.Debugf(t.Logger, "headless: notification %q", n.Title)
	return nil
}

// Run serves the host on the calling goroutine until Quit.
func (t *Toolkit) Run(host toolkit.Host) error {
	ctx, cancel := context.WithCancel(context.Background())
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		cancel()
		return errors.New("headless toolkit already running")
	}
	t.host = host
	t.cancel = cancel
	t.running = true
	if t.quit {
		cancel()
	}
	close(t.ready)
	t.mu.Unlock()

	host.Serve(ctx)

	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
	return nil
}

// Ready is closed once Run has started.
func (t *Toolkit) Ready() <-chan struct{} {
	return t.ready
}

// Quit ends Run. A Quit before Run makes Run return immediately.
func (t *Toolkit) Quit() {
	t.mu.Lock()
	cancel := t.cancel
	t.quit = true
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Activate simulates a user clicking item.
func (t *Toolkit) Activate(item *menu.Item) error {
	t.mu.Lock()
	host, running := t.host, t.running
	t.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	host.Activate(item)
	return nil
}

func (t *Toolkit) MainMenu() *menu.Menu {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mainMenu
}

func (t *Toolkit) UIApplication() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.uiApplication
}

func (t *Toolkit) StatusItems() []*statusbar.Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := make([]*statusbar.Item, len(t.statusItems))
	copy(items, t.statusItems)
	return items
}

func (t *Toolkit) Notifications() []*notification.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	ns := make([]*notification.Notification, len(t.notifications))
	copy(ns, t.notifications)
	return ns
}
