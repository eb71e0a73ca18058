// Package dispatch delivers activation callbacks on the goroutine that owns
// the native event loop. Callbacks never run concurrently with each other.
package dispatch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/manifold/gallium/pkg/logging"
)

var (
	ErrStopped    = errors.New("dispatch loop is not running")
	ErrRunning    = errors.New("dispatch loop already running")
	ErrNoCallback = errors.New("no callback")
)

const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

type task struct {
	cb   Callback
	done chan struct{}
}

// Loop serializes callback invocations onto the goroutine that calls Run.
type Loop struct {
	Logger logging.DebugLogger

	state   int32
	tasks   chan task
	stopped chan struct{}
	invoked uint64
	once    sync.Once
}

func NewLoop() *Loop {
	return &Loop{
		tasks:   make(chan task),
		stopped: make(chan struct{}),
	}
}

// Run pumps callbacks on the calling goroutine, locked to its OS thread,
// until ctx is done or Stop is called. A Loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&l.state, stateIdle, stateRunning) {
		if atomic.LoadInt32(&l.state) == stateStopped {
			return ErrStopped
		}
		return ErrRunning
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer l.Stop()

	for {
		select {
		case t := <-l.tasks:
			l.exec(t)
		case <-ctx.Done():
			return nil
		case <-l.stopped:
			return nil
		}
	}
}

func (l *Loop) exec(t task) {
	// a panicking callback takes the loop down with it; done is still
	// closed so the activating side is released.
	defer close(t.done)
	atomic.AddUint64(&l.invoked, 1)
	t.cb.invoke()
}

// Invoke runs cb on the loop goroutine and returns once it has returned.
// Before Run starts, Invoke waits for it. After Stop it returns ErrStopped.
// Invoke must not be called from inside a callback.
func (l *Loop) Invoke(cb Callback) error {
	if cb.IsZero() {
		return ErrNoCallback
	}
	if atomic.LoadInt32(&l.state) == stateStopped {
		return ErrStopped
	}
	t := task{cb: cb, done: make(chan struct{})}
	select {
	case l.tasks <- t:
	case <-l.stopped:
		return ErrStopped
	}
	<-t.done
	logging.Debug(l.Logger, "dispatch: callback returned")
	return nil
}

// Stop ends Run. Pending and later Invoke calls return ErrStopped.
func (l *Loop) Stop() {
	l.once.Do(func() {
		atomic.StoreInt32(&l.state, stateStopped)
		close(l.stopped)
	})
}

// Running reports whether Run is currently pumping callbacks.
func (l *Loop) Running() bool {
	return atomic.LoadInt32(&l.state) == stateRunning
}

// Invoked returns the number of callbacks that have been run.
func (l *Loop) Invoked() uint64 {
	return atomic.LoadUint64(&l.invoked)
}
