// Command libgallium builds the C library:
//
//	go build -buildmode=c-shared -o libgallium.so ./cmd/libgallium
//
// C callers include include/gallium/menu.h. Handles are opaque pointers
// there and uintptr_t here, which share a representation on every
// supported platform. Failures are logged and reported as NULL returns.
package main

/*
#include <stdbool.h>
#include <stdint.h>

typedef void(*gallium_callback_t)(void*);

static inline void gallium_invoke(gallium_callback_t cb, void* arg) {
	cb(arg);
}
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/manifold/gallium/pkg/bridge"
	"github.com/manifold/gallium/pkg/dispatch"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/logging/zap"
	"github.com/manifold/gallium/pkg/menu"
	"github.com/manifold/gallium/pkg/toolkit/systray"
)

var (
	once sync.Once
	b    *bridge.Bridge
	log  logging.Logger
)

func gallium() *bridge.Bridge {
	once.Do(func() {
		if os.Getenv("GALLIUM_DEBUG") != "" {
			log = zap.NewLogger()
		} else {
			log = zap.NewProductionLogger()
		}
		b = bridge.New(systray.New(log), bridge.WithLogger(log))
	})
	return b
}

func check(err error) bool {
	if err != nil {
		logging.Errorf(log, "%v", err)
		return false
	}
	return true
}

//export NSMenu_New
func NSMenu_New(title *C.char) C.uintptr_t {
	return C.uintptr_t(gallium().NewMenu(C.GoString(title)))
}

//export NSMenu_AddMenuItem
func NSMenu_AddMenuItem(m C.uintptr_t, title, shortcutKey *C.char, mods C.int, cb C.gallium_callback_t, arg unsafe.Pointer) C.uintptr_t {
	var fn dispatch.Func
	if cb != nil {
		fn = func(arg unsafe.Pointer) {
			C.gallium_invoke(cb, arg)
		}
	}
	var key string
	if shortcutKey != nil {
		key = C.GoString(shortcutKey)
	}
	h, err := gallium().AddMenuItem(bridge.Handle(m), C.GoString(title), key, menu.Modifier(mods), fn, arg)
	if !check(err) {
		return 0
	}
	return C.uintptr_t(h)
}

//export NSMenuItem_SetSubmenu
func NSMenuItem_SetSubmenu(item, submenu C.uintptr_t) {
	check(gallium().SetSubmenu(bridge.Handle(item), bridge.Handle(submenu)))
}

//export NSStatusBar_AddItem
func NSStatusBar_AddItem(width C.int, title *C.char, highlightMode C.bool, m C.uintptr_t) {
	_, err := gallium().AddStatusItem(int(width), C.GoString(title), bool(highlightMode), bridge.Handle(m))
	check(err)
}

//export NSUserNotification_New
func NSUserNotification_New(title, subtitle, informativeText *C.char, contentImage C.uintptr_t, identifier *C.char,
	hasActionButton, hasReplyButton C.bool, actionButtonTitle, otherButtonTitle *C.char) C.uintptr_t {
	h, err := gallium().NewNotification(
		C.GoString(title),
		C.GoString(subtitle),
		C.GoString(informativeText),
		bridge.Handle(contentImage),
		C.GoString(identifier),
		bool(hasActionButton),
		bool(hasReplyButton),
		C.GoString(actionButtonTitle),
		C.GoString(otherButtonTitle),
	)
	if !check(err) {
		return 0
	}
	return C.uintptr_t(h)
}

//export NSUserNotificationCenter_DeliverNotification
func NSUserNotificationCenter_DeliverNotification(n C.uintptr_t) {
	check(gallium().DeliverNotification(bridge.Handle(n)))
}

//export NSImage_NewFromPNG
func NSImage_NewFromPNG(buf unsafe.Pointer, size C.int) C.uintptr_t {
	if buf == nil || size <= 0 {
		logging.Errorf(log, "NSImage_NewFromPNG: empty buffer")
		return 0
	}
	h, err := gallium().NewImageFromPNG(C.GoBytes(buf, size), int(size))
	if !check(err) {
		return 0
	}
	return C.uintptr_t(h)
}

//export NSImage_WriteToFile
func NSImage_WriteToFile(img C.uintptr_t, path *C.char) {
	check(gallium().WriteImageToFile(bridge.Handle(img), C.GoString(path)))
}

//export NSApplication_SetMainMenu
func NSApplication_SetMainMenu(m C.uintptr_t) {
	check(gallium().SetMainMenu(bridge.Handle(m)))
}

//export NSApplication_Run
func NSApplication_Run() {
	check(gallium().Run())
}

//export NSApplication_Terminate
func NSApplication_Terminate() {
	gallium().Quit()
}

//export SetUIApplication
func SetUIApplication() {
	check(gallium().SetUIApplication())
}

//export Gallium_Release
func Gallium_Release(h C.uintptr_t) {
	check(gallium().Release(bridge.Handle(h)))
}

func main() {}
