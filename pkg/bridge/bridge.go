// Package bridge exposes menus, status items, notifications, images and the
// application lifecycle through a flat API of opaque handles. It is the Go
// form of the C ABI exported by cmd/libgallium.
package bridge

import (
	"context"
	"unsafe"

	"github.com/manifold/gallium/pkg/app"
	"github.com/manifold/gallium/pkg/dispatch"
	"github.com/manifold/gallium/pkg/handle"
	"github.com/manifold/gallium/pkg/image"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/toolkit"
	"github.com/spf13/afero"
)

type Handle = handle.Handle

// Bridge owns the handle table and the application state for one process.
type Bridge struct {
	Logger logging.Logger

	handles *handle.Table
	app     *app.Application
	center  *notification.Center
	codec   *image.Codec
}

type Option func(*Bridge)

func WithLogger(log logging.Logger) Option {
	return func(b *Bridge) {
		b.Logger = log
	}
}

// WithFs sets the filesystem images are written to.
func WithFs(fs afero.Fs) Option {
	return func(b *Bridge) {
		b.codec = &image.Codec{Fs: fs}
	}
}

// WithoutSignals leaves SIGINT and SIGHUP to the caller.
func WithoutSignals() Option {
	return func(b *Bridge) {
		b.app.HandleSignals = false
	}
}

func New(tk toolkit.Toolkit, opts ...Option) *Bridge {
	b := &Bridge{
		handles: handle.NewTable(),
		codec:   image.NewCodec(),
	}
	b.app = app.New(tk, nil)
	for _, opt := range opts {
		opt(b)
	}
	b.app.Logger = b.Logger
	if b.Logger != nil {
		b.handles.Logger = b.Logger
	}
	b.center = notification.NewCenter(tk, b.Logger)
	b.app.OnTerminate(b.center)
	return b
}

// App returns the application the bridge drives.
func (b *Bridge) App() *app.Application {
	return b.app
}

// Handles returns the number of live handles.
func (b *Bridge) Handles() int {
	return b.handles.Len()
}

func (b *Bridge) Menu(h Handle) (*menu.Menu, error) {
	v, err := b.handles.Get(h, handle.KindMenu)
	if err != nil {
		return nil, err
	}
	return v.(*menu.Menu), nil
}

func (b *Bridge) Item(h Handle) (*menu.Item, error) {
	v, err := b.handles.Get(h, handle.KindMenuItem)
	if err != nil {
		return nil, err
	}
	return v.(*menu.Item), nil
}

func (b *Bridge) Image(h Handle) (*image.Image, error) {
	v, err := b.handles.Get(h, handle.KindImage)
	if err != nil {
		return nil, err
	}
	return v.(*image.Image), nil
}

func (b *Bridge) Notification(h Handle) (*notification.Notification, error) {
	v, err := b.handles.Get(h, handle.KindNotification)
	if err != nil {
		return nil, err
	}
	return v.(*notification.Notification), nil
}

// NewMenu creates an empty menu owned by the caller.
func (b *Bridge) NewMenu(title string) Handle {
	return b.handles.Put(handle.KindMenu, menu.New(title))
}

// AddMenuItem appends an item to the menu. fn, if not nil, is called with
// arg every time the item is activated.
func (b *Bridge) AddMenuItem(m Handle, title, key string, mods menu.Modifier, fn dispatch.Func, arg unsafe.Pointer) (Handle, error) {
	parent, err := b.Menu(m)
	if err != nil {
		return 0, opError("AddMenuItem", m, err)
	}
	item := parent.AddItem(title, key, mods, dispatch.NewCallback(fn, arg))
	return b.handles.Put(handle.KindMenuItem, item), nil
}

// AddSeparator appends a separator item to the menu.
func (b *Bridge) AddSeparator(m Handle) (Handle, error) {
	parent, err := b.Menu(m)
	if err != nil {
		return 0, opError("AddSeparator", m, err)
	}
	return b.handles.Put(handle.KindMenuItem, parent.AddSeparator()), nil
}

// SetSubmenu attaches sub below item. A submenu it replaces goes back to
// the caller and keeps its handle.
func (b *Bridge) SetSubmenu(item, sub Handle) error {
	it, err := b.Item(item)
	if err != nil {
		return opError("SetSubmenu", item, err)
	}
	m, err := b.Menu(sub)
	if err != nil {
		return opError("SetSubmenu", sub, err)
	}
	prev, err := it.SetSubmenu(m)
	if err != nil {
		return opError("SetSubmenu", sub, err)
	}
	if prev != nil {
		logging.Debugf(b.Logger, "bridge: %s returned to caller", prev)
	}
	return nil
}

// AddStatusItem creates a status bar slot showing the menu. A zero menu
// handle gives a slot without a menu.
func (b *Bridge) AddStatusItem(width int, title string, highlight bool, m Handle) (Handle, error) {
	var mm *menu.Menu
	if m != 0 {
		var err error
		if mm, err = b.Menu(m); err != nil {
			return 0, opError("AddStatusItem", m, err)
		}
	}
	item, err := b.app.AddStatusItem(width, title, highlight, mm)
	if err != nil {
		return 0, opError("AddStatusItem", m, err)
	}
	return b.handles.Put(handle.KindStatusItem, item), nil
}

// NewNotification builds a notification descriptor. A zero image handle
// means no image.
func (b *Bridge) NewNotification(title, subtitle, informativeText string, img Handle, identifier string,
	hasActionButton, hasReplyButton bool, actionButtonTitle, otherButtonTitle string) (Handle, error) {
	var im *image.Image
	if img != 0 {
		var err error
		if im, err = b.Image(img); err != nil {
			return 0, opError("NewNotification", img, err)
		}
	}
	n := notification.New(title, subtitle, informativeText, im, identifier,
		hasActionButton, hasReplyButton, actionButtonTitle, otherButtonTitle)
	return b.handles.Put(handle.KindNotification, n), nil
}

// DeliverNotification hands the notification to the platform and returns
// without waiting. The handle is released.
func (b *Bridge) DeliverNotification(h Handle) error {
	n, err := b.Notification(h)
	if err != nil {
		return opError("DeliverNotification", h, err)
	}
	if err := b.center.Deliver(n); err != nil {
		return opError("DeliverNotification", h, err)
	}
	return opError("DeliverNotification", h, b.handles.Delete(h))
}

// NewImageFromPNG decodes the first size bytes of buf.
func (b *Bridge) NewImageFromPNG(buf []byte, size int) (Handle, error) {
	img, err := image.NewFromPNG(buf, size)
	if err != nil {
		return 0, opError("NewImageFromPNG", 0, err)
	}
	return b.handles.Put(handle.KindImage, img), nil
}

// WriteImageToFile persists the image at path, replacing any file there.
func (b *Bridge) WriteImageToFile(h Handle, path string) error {
	img, err := b.Image(h)
	if err != nil {
		return opError("WriteImageToFile", h, err)
	}
	return opError("WriteImageToFile", h, b.codec.WriteToFile(img, path))
}

// SetMainMenu installs the menu as the application main menu.
func (b *Bridge) SetMainMenu(m Handle) error {
	mm, err := b.Menu(m)
	if err != nil {
		return opError("SetMainMenu", m, err)
	}
	return opError("SetMainMenu", m, b.app.SetMainMenu(mm))
}

func (b *Bridge) SetUIApplication() error {
	return opError("SetUIApplication", 0, b.app.SetUIApplication())
}

// Run enters the event loop and blocks until the application terminates.
func (b *Bridge) Run() error {
	return b.RunContext(context.Background())
}

// RunContext is Run, additionally terminating once ctx is done. A ctx done
// before the loop starts terminates it as soon as it runs.
func (b *Bridge) RunContext(ctx context.Context) error {
	return opError("Run", 0, b.app.Run(ctx))
}

// Quit asks a running application to terminate.
func (b *Bridge) Quit() {
	b.app.Terminate()
}

// Release frees a handle owned by the caller. Releasing a menu releases
// the handles of everything below it.
func (b *Bridge) Release(h Handle) error {
	switch b.handles.Kind(h) {
	case handle.KindMenu:
		m, _ := b.Menu(h)
		if m.Owner() != menu.OwnerCaller {
			return opError("Release", h, ErrOwned)
		}
		menu.Walk(m, func(item *menu.Item) {
			if ih, ok := b.handles.Lookup(item); ok {
				b.handles.Delete(ih)
			}
			if sub := item.Submenu(); sub != nil {
				if sh, ok := b.handles.Lookup(sub); ok {
					b.handles.Delete(sh)
				}
			}
		})
	case handle.KindMenuItem, handle.KindStatusItem:
		return opError("Release", h, ErrOwned)
	}
	return opError("Release", h, b.handles.Delete(h))
}
