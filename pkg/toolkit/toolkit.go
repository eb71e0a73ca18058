// Package toolkit defines what the bridge needs from a native UI toolkit.
package toolkit

import (
	"context"
	"errors"

	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/statusbar"
)

var ErrUnsupported = errors.New("not supported by this toolkit")

// Host is driven by a toolkit while its event loop runs.
type Host interface {
	// Activate is called once per user activation of an item.
	Activate(item *menu.Item)

	// Serve pumps activation callbacks until ctx is done, locked to the OS
	// thread it is called on. Callbacks run on that thread. Toolkits whose
	// native loop owns the main thread call Serve from another goroutine,
	// so callbacks must not use main-thread-only platform APIs there.
	Serve(ctx context.Context)
}

// Toolkit is a native menu, status bar and notification implementation.
// Calls other than Run and Quit happen before Run or from inside
// activation callbacks.
type Toolkit interface {
	notification.Deliverer

	SetMainMenu(m *menu.Menu) error
	SetUIApplication() error
	AddStatusItem(item *statusbar.Item) error

	// Run enters the event loop and blocks until Quit or a platform
	// termination.
	Run(host Host) error
	Quit()
}
