package notification

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockDeliverer struct {
	mock.Mock
	mu   sync.Mutex
	seen []*Notification
}

func (d *mockDeliverer) Deliver(n *Notification) error {
	args := d.Called(n)
	d.mu.Lock()
	d.seen = append(d.seen, n)
	d.mu.Unlock()
	return args.Error(0)
}

func TestNew(t *testing.T) {
	n := New("Build finished", "gallium", "All tests passed", nil, "build-1", true, false, "Open", "Dismiss")
	assert.Equal(t, "Build finished", n.Title)
	assert.Equal(t, "gallium", n.Subtitle)
	assert.Equal(t, "All tests passed", n.InformativeText)
	assert.Equal(t, "build-1", n.Identifier)
	assert.True(t, n.HasActionButton)
	assert.False(t, n.HasReplyButton)
	assert.Equal(t, "Open", n.ActionButtonTitle)
	assert.Equal(t, "Dismiss", n.OtherButtonTitle)
	assert.False(t, n.Delivered())
}

func TestNewGeneratesIdentifier(t *testing.T) {
	a := New("a", "", "", nil, "", false, false, "", "")
	b := New("b", "", "", nil, "", false, false, "", "")
	assert.NotEmpty(t, a.Identifier)
	assert.NotEqual(t, a.Identifier, b.Identifier)
}

func TestCenterDeliversOnce(t *testing.T) {
	d := new(mockDeliverer)
	d.On("Deliver", mock.Anything).Return(nil)
	c := NewCenter(d, nil)

	n := New("hello", "", "", nil, "", false, false, "", "")
	require.NoError(t, c.Deliver(n))
	assert.True(t, n.Delivered())
	assert.Equal(t, ErrDelivered, c.Deliver(n))

	require.NoError(t, c.Close())
	d.AssertNumberOfCalls(t, "Deliver", 1)
	assert.Equal(t, []*Notification{n}, d.seen)
}

func TestCenterLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d := new(mockDeliverer)
	d.On("Deliver", mock.Anything).Return(errors.New("no notification center"))
	c := NewCenter(d, zap.New(core).Sugar())

	n := New("hello", "", "", nil, "n1", false, false, "", "")
	require.NoError(t, c.Deliver(n))
	require.NoError(t, c.Close())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "notification n1: no notification center", entries[0].Message)
}

func TestCenterClosed(t *testing.T) {
	d := new(mockDeliverer)
	c := NewCenter(d, nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	n := New("late", "", "", nil, "", false, false, "", "")
	assert.Equal(t, ErrClosed, c.Deliver(n))
	assert.False(t, n.Delivered())
	d.AssertNotCalled(t, "Deliver", mock.Anything)
}

type blockingDeliverer struct {
	release chan struct{}
	mu      sync.Mutex
	count   int
}

func (d *blockingDeliverer) Deliver(n *Notification) error {
	<-d.release
	d.mu.Lock()
	d.count++
	d.mu.Unlock()
	return nil
}

func TestCenterDeliverDoesNotWaitOnPlatform(t *testing.T) {
	d := &blockingDeliverer{release: make(chan struct{})}
	c := NewCenter(d, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			assert.NoError(t, c.Deliver(New("n", "", "", nil, "", false, false, "", "")))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Deliver blocked behind a slow platform")
	}

	close(d.release)
	require.NoError(t, c.Close())
	assert.Equal(t, 100, d.count)
	assert.Equal(t, 0, c.queued())
}
