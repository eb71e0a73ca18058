package main

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/manifold/gallium/pkg/logging"
)

// watcher calls onChange whenever the watched file is written, created or
// renamed over.
type watcher struct {
	Logger logging.Logger

	path     string
	onChange func()
	changed  int32
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

func newWatcher(path string, onChange func(), log logging.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	// editors replace files, so watch the directory
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &watcher{
		Logger:   log,
		path:     abs,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.serve()
	return w, nil
}

func (w *watcher) serve() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			logging.Debugf(w.Logger, "watch: %s", event)
			atomic.StoreInt32(&w.changed, 1)
			w.onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Debug(w.Logger, "watch error:", err)
		}
	}
}

// Changed reports whether the file changed since the watcher started.
func (w *watcher) Changed() bool {
	return atomic.LoadInt32(&w.changed) == 1
}

func (w *watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
