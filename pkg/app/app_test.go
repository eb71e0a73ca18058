package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/manifold/gallium/pkg/dispatch"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/statusbar"
	"github.com/manifold/gallium/pkg/toolkit"
	"github.com/manifold/gallium/pkg/toolkit/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockToolkit struct {
	mock.Mock
}

func (tk *mockToolkit) SetMainMenu(m *menu.Menu) error {
	return tk.Called(m).Error(0)
}

func (tk *mockToolkit) SetUIApplication() error {
	return tk.Called().Error(0)
}

func (tk *mockToolkit) AddStatusItem(item *statusbar.Item) error {
	return tk.Called(item).Error(0)
}

func (tk *mockToolkit) Deliver(n *notification.Notification) error {
	return tk.Called(n).Error(0)
}

func (tk *mockToolkit) Run(host toolkit.Host) error {
	return tk.Called(host).Error(0)
}

func (tk *mockToolkit) Quit() {
	tk.Called()
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newApp() (*Application, *headless.Toolkit) {
	tk := headless.New()
	a := New(tk, nil)
	a.HandleSignals = false
	return a, tk
}

// start runs a in the background and waits until activations are served.
func start(t *testing.T, a *Application) <-chan error {
	errs := make(chan error, 1)
	go func() { errs <- a.Run(context.Background()) }()
	require.Eventually(t, a.Serving, time.Second, time.Millisecond)
	return errs
}

func TestLifecycle(t *testing.T) {
	a, tk := newApp()
	assert.Equal(t, StateUninitialized, a.State())

	m := menu.New("<root>")
	require.NoError(t, a.SetMainMenu(m))
	assert.Equal(t, StateConfigured, a.State())
	assert.Equal(t, menu.OwnerApplication, m.Owner())
	assert.Same(t, m, tk.MainMenu())

	assert.False(t, a.IsUIApplication())
	require.NoError(t, a.SetUIApplication())
	require.NoError(t, a.SetUIApplication())
	assert.True(t, tk.UIApplication())
	assert.True(t, a.IsUIApplication())

	errs := start(t, a)
	assert.Equal(t, StateRunning, a.State())
	assert.Equal(t, ErrRunning, a.Run(context.Background()))
	assert.Equal(t, ErrRunning, a.SetMainMenu(menu.New("late")))
	assert.Equal(t, ErrRunning, a.SetUIApplication())

	a.Terminate()
	require.NoError(t, <-errs)
	assert.Equal(t, StateTerminated, a.State())
	assert.Equal(t, ErrTerminated, a.Run(context.Background()))
	assert.Equal(t, ErrTerminated, a.SetMainMenu(menu.New("late")))
	_, err := a.AddStatusItem(10, "x", false, nil)
	assert.Equal(t, ErrTerminated, err)
}

func TestRunWithoutMainMenu(t *testing.T) {
	a, _ := newApp()
	errs := start(t, a)
	a.Terminate()
	require.NoError(t, <-errs)
	assert.Equal(t, StateTerminated, a.State())
}

func TestRunStopsOnContext(t *testing.T) {
	a, _ := newApp()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
	assert.Equal(t, StateTerminated, a.State())
}

func TestSetMainMenuLastWriterWins(t *testing.T) {
	a, tk := newApp()

	status := menu.New("<statusbar>")
	_, err := a.AddStatusItem(24, "●", true, status)
	require.NoError(t, err)

	first := menu.New("first")
	second := menu.New("second")
	require.NoError(t, a.SetMainMenu(first))
	require.NoError(t, a.SetMainMenu(second))

	assert.Same(t, second, a.MainMenu())
	assert.Same(t, second, tk.MainMenu())
	assert.Equal(t, menu.OwnerCaller, first.Owner())
	assert.Equal(t, menu.OwnerApplication, second.Owner())
	require.Len(t, tk.StatusItems(), 1)
	assert.Same(t, status, tk.StatusItems()[0].Menu)

	// installing the same menu again is a no-op
	require.NoError(t, a.SetMainMenu(second))
	assert.Equal(t, menu.OwnerApplication, second.Owner())
}

func TestSetMainMenuAttached(t *testing.T) {
	a, _ := newApp()
	sub := menu.New("sub")
	_, err := menu.New("<root>").AddItem("sub", "", 0, dispatch.Callback{}).SetSubmenu(sub)
	require.NoError(t, err)

	err = a.SetMainMenu(sub)
	assert.True(t, errors.Is(err, menu.ErrAttached))
	assert.Equal(t, StateUninitialized, a.State())
}

func TestActivate(t *testing.T) {
	a, tk := newApp()
	m := menu.New("File")

	ctx := new(int)
	calls := 0
	var seen unsafe.Pointer
	quit := m.AddItem("Quit", "q", menu.CmdModifier, dispatch.NewCallback(func(arg unsafe.Pointer) {
		calls++
		seen = arg
	}, unsafe.Pointer(ctx)))
	noop := m.AddItem("About", "", 0, dispatch.Callback{})
	require.NoError(t, a.SetMainMenu(m))

	errs := start(t, a)
	require.NoError(t, tk.Activate(quit))
	assert.Equal(t, 1, calls)
	assert.Equal(t, unsafe.Pointer(ctx), seen)

	require.NoError(t, tk.Activate(noop))
	require.NoError(t, tk.Activate(quit))
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), a.Activations())

	a.Terminate()
	require.NoError(t, <-errs)
}

func TestActivateAsSoonAsReady(t *testing.T) {
	for i := 0; i < 200; i++ {
		a, tk := newApp()
		var calls int32
		item := menu.New("File").AddItem("Open", "", 0, dispatch.FromFunc(func() {
			atomic.AddInt32(&calls, 1)
		}))

		errs := make(chan error, 1)
		go func() { errs <- a.Run(context.Background()) }()
		<-tk.Ready()
		require.NoError(t, tk.Activate(item))
		require.Equal(t, int32(1), atomic.LoadInt32(&calls), "run %d", i)

		a.Terminate()
		require.NoError(t, <-errs)
	}
}

func TestTerminateFromCallback(t *testing.T) {
	a, tk := newApp()
	m := menu.New("File")
	quit := m.AddItem("Quit", "q", menu.CmdModifier, dispatch.FromFunc(func() {
		a.Terminate()
	}))
	require.NoError(t, a.SetMainMenu(m))

	errs := start(t, a)
	require.NoError(t, tk.Activate(quit))
	require.NoError(t, <-errs)
	assert.Equal(t, StateTerminated, a.State())
}

func TestClosersRunInReverse(t *testing.T) {
	a, _ := newApp()
	var order []string
	a.OnTerminate(closerFunc(func() error {
		order = append(order, "first")
		return nil
	}))
	a.OnTerminate(closerFunc(func() error {
		order = append(order, "second")
		return errors.New("second failed")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Run(ctx)
	assert.EqualError(t, err, "second failed")
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestToolkitErrors(t *testing.T) {
	tk := new(mockToolkit)
	a := New(tk, nil)
	a.HandleSignals = false

	m := menu.New("<root>")
	tk.On("SetMainMenu", m).Return(errors.New("no menu bar"))
	assert.EqualError(t, a.SetMainMenu(m), "no menu bar")
	assert.Equal(t, menu.OwnerCaller, m.Owner())
	assert.Equal(t, StateUninitialized, a.State())

	s := menu.New("<statusbar>")
	tk.On("AddStatusItem", mock.Anything).Return(toolkit.ErrUnsupported)
	_, err := a.AddStatusItem(10, "x", false, s)
	assert.Equal(t, toolkit.ErrUnsupported, err)
	assert.Equal(t, menu.OwnerCaller, s.Owner())

	tk.On("SetUIApplication").Return(nil).Once()
	require.NoError(t, a.SetUIApplication())
	require.NoError(t, a.SetUIApplication())

	tk.On("Run", a).Return(errors.New("no display"))
	assert.EqualError(t, a.Run(context.Background()), "no display")
	assert.Equal(t, StateTerminated, a.State())

	tk.AssertExpectations(t)
}
