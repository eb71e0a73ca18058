// Package app holds the process-wide application state: the main menu,
// the UI-application flag and the event loop lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/manifold/gallium/pkg/dispatch"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/statusbar"
	"github.com/manifold/gallium/pkg/toolkit"
)

var (
	ErrRunning    = errors.New("application is running")
	ErrTerminated = errors.New("application has terminated")
)

// State is a step in the application lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateConfigured
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Application drives a toolkit through the lifecycle
// Uninitialized -> Configured -> Running -> Terminated.
type Application struct {
	Toolkit toolkit.Toolkit
	Logger  logging.Logger

	// HandleSignals terminates the running application on SIGINT,
	// SIGTERM and SIGHUP.
	HandleSignals bool

	state       int32
	mainMenu    *menu.Menu
	uiApp       bool
	statusItems []*statusbar.Item
	closers     []io.Closer
	loop        *dispatch.Loop
	activations uint64
	mu          sync.Mutex
}

// New builds an application on top of tk.
func New(tk toolkit.Toolkit, log logging.Logger) *Application {
	return &Application{
		Toolkit:       tk,
		Logger:        log,
		HandleSignals: true,
		loop:          dispatch.NewLoop(),
	}
}

func (a *Application) State() State {
	return State(atomic.LoadInt32(&a.state))
}

func (a *Application) checkNotStarted() error {
	switch a.State() {
	case StateRunning:
		return ErrRunning
	case StateTerminated:
		return ErrTerminated
	}
	return nil
}

// SetMainMenu installs m as the main menu and takes ownership of it. A menu
// installed earlier is handed back to the caller.
func (a *Application) SetMainMenu(m *menu.Menu) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.checkNotStarted(); err != nil {
		return err
	}
	if m == nil {
		return errors.New("nil main menu")
	}

	prev := a.mainMenu
	if m != prev {
		if err := m.Attach(menu.OwnerApplication); err != nil {
			return err
		}
	}
	if err := a.Toolkit.SetMainMenu(m); err != nil {
		if m != prev {
			m.Detach()
		}
		return err
	}
	if prev != nil && prev != m {
		prev.Detach()
	}
	a.mainMenu = m
	atomic.CompareAndSwapInt32(&a.state, int32(StateUninitialized), int32(StateConfigured))
	logging.Debugf(a.Logger, "app: main menu %s", m)
	return nil
}

// MainMenu returns the installed main menu.
func (a *Application) MainMenu() *menu.Menu {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mainMenu
}

// SetUIApplication marks the process as presenting UI. It is idempotent.
func (a *Application) SetUIApplication() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.checkNotStarted(); err != nil {
		return err
	}
	if a.uiApp {
		return nil
	}
	if err := a.Toolkit.SetUIApplication(); err != nil {
		return err
	}
	a.uiApp = true
	atomic.CompareAndSwapInt32(&a.state, int32(StateUninitialized), int32(StateConfigured))
	return nil
}

func (a *Application) IsUIApplication() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uiApp
}

// AddStatusItem creates a status bar slot presenting m. The slot takes
// ownership of m.
func (a *Application) AddStatusItem(width int, title string, highlight bool, m *menu.Menu) (*statusbar.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.State() == StateTerminated {
		return nil, ErrTerminated
	}
	item, err := statusbar.New(width, title, highlight, m)
	if err != nil {
		return nil, err
	}
	if err := a.Toolkit.AddStatusItem(item); err != nil {
		if m != nil {
			m.Detach()
		}
		return nil, err
	}
	a.statusItems = append(a.statusItems, item)
	return item, nil
}

func (a *Application) StatusItems() []*statusbar.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	items := make([]*statusbar.Item, len(a.statusItems))
	copy(items, a.statusItems)
	return items
}

// OnTerminate registers c to be closed after the event loop returns.
// Closers run in reverse order of registration.
func (a *Application) OnTerminate(c io.Closer) {
	a.mu.Lock()
	a.closers = append(a.closers, c)
	a.mu.Unlock()
}

// Run enters the toolkit event loop and blocks until it returns. Run may
// only be called once.
func (a *Application) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&a.state, int32(StateConfigured), int32(StateRunning)) &&
		!atomic.CompareAndSwapInt32(&a.state, int32(StateUninitialized), int32(StateRunning)) {
		if a.State() == StateRunning {
			return ErrRunning
		}
		return ErrTerminated
	}
	logging.Infof(a.Logger, "app: running (ui application: %v)", a.IsUIApplication())

	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan struct{})
	go terminateOnContextDone(ctx, a, done)
	if a.HandleSignals {
		go terminateOnSignal(a, done)
	}

	err := a.Toolkit.Run(a)
	close(done)
	a.loop.Stop()
	atomic.StoreInt32(&a.state, int32(StateTerminated))
	logging.Infof(a.Logger, "app: terminated")

	a.mu.Lock()
	closers := a.closers
	a.mu.Unlock()
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil {
			errs = append(errs, cerr)
		}
	}
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Terminate asks the toolkit to leave its event loop.
func (a *Application) Terminate() {
	if a == nil || a.State() != StateRunning {
		return
	}
	a.Toolkit.Quit()
}

// Activate runs the callback of item on the event loop goroutine and
// returns once it has returned. Items without a callback are ignored.
func (a *Application) Activate(item *menu.Item) {
	cb := item.Callback()
	if cb.IsZero() {
		logging.Debugf(a.Logger, "app: %s has no callback", item)
		return
	}
	atomic.AddUint64(&a.activations, 1)
	if err := a.loop.Invoke(cb); err != nil {
		logging.Errorf(a.Logger, "app: activate %s: %v", item, err)
	}
}

// Serve pumps activation callbacks. Toolkits call it from their event loop.
func (a *Application) Serve(ctx context.Context) {
	if err := a.loop.Run(ctx); err != nil {
		logging.Errorf(a.Logger, "app: dispatch loop: %v", err)
	}
}

// Serving reports whether activation callbacks are being pumped.
func (a *Application) Serving() bool {
	return a.loop.Running()
}

// Activations returns the number of activations with a callback.
func (a *Application) Activations() uint64 {
	return atomic.LoadUint64(&a.activations)
}

func terminateOnSignal(a *Application, done <-chan struct{}) {
	termSigs := make(chan os.Signal, 1)
	signal.Notify(termSigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(termSigs)
	select {
	case sig := <-termSigs:
		logging.Infof(a.Logger, "app: received %s", sig)
		a.Terminate()
	case <-done:
	}
}

func terminateOnContextDone(ctx context.Context, a *Application, done <-chan struct{}) {
	select {
	case <-ctx.Done():
		a.Terminate()
	case <-done:
	}
}
