package statusbar

import (
	"errors"
	"testing"

	"github.com/manifold/gallium/pkg/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := menu.New("<statusbar>")
	item, err := New(24, "●", true, m)
	require.NoError(t, err)

	assert.Equal(t, 24, item.Width)
	assert.Equal(t, "●", item.Title)
	assert.True(t, item.Highlight)
	assert.Same(t, m, item.Menu)
	assert.Equal(t, menu.OwnerStatusBar, m.Owner())
}

func TestNewAttachedMenu(t *testing.T) {
	m := menu.New("<statusbar>")
	_, err := New(24, "a", false, m)
	require.NoError(t, err)

	_, err = New(24, "b", false, m)
	assert.True(t, errors.Is(err, menu.ErrAttached))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(-1, "x", false, nil)
	assert.Error(t, err)

	item, err := New(0, "no menu", false, nil)
	require.NoError(t, err)
	assert.Nil(t, item.Menu)
}
