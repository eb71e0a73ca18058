package notification

import (
	"errors"
	"sync"

	"github.com/manifold/gallium/pkg/logging"
)

var ErrClosed = errors.New("notification center closed")

// Deliverer presents a notification on the platform.
type Deliverer interface {
	Deliver(n *Notification) error
}

// Center hands notifications to a Deliverer on a background worker so
// Deliver never waits on the platform.
type Center struct {
	Deliverer Deliverer
	Logger    logging.Logger

	pending []*Notification
	wake    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

func NewCenter(d Deliverer, log logging.Logger) *Center {
	c := &Center{
		Deliverer: d,
		Logger:    log,
		wake:      make(chan struct{}, 1),
	}
	c.wg.Add(1)
	go c.work()
	return c
}

// Deliver queues n for presentation and returns without blocking. A
// notification is delivered once.
func (c *Center) Deliver(n *Notification) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := n.markDelivered(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.pending = append(c.pending, n)
	c.mu.Unlock()
	c.signal()
	return nil
}

func (c *Center) queued() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Close stops accepting notifications and waits for queued ones to be
// handed to the Deliverer.
func (c *Center) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	c.signal()
	c.wg.Wait()
	return nil
}

func (c *Center) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Center) work() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		batch, closed := c.pending, c.closed
		c.pending = nil
		c.mu.Unlock()

		for _, n := range batch {
			if err := c.Deliverer.Deliver(n); err != nil {
				logging.Errorf(c.Logger, "notification %s: %v", n.Identifier, err)
				continue
			}
			logging.Debugf(c.Logger, "notification %s delivered", n.Identifier)
		}
		if closed && len(batch) == 0 {
			return
		}
		if len(batch) == 0 {
			<-c.wake
		}
	}
}
