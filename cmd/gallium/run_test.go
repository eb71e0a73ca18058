package main

import (
	"bytes"
	"context"
	goimage "image"
	"image/png"
	"testing"
	"time"

	"github.com/manifold/gallium/pkg/app"
	"github.com/manifold/gallium/pkg/bridge"
	"github.com/manifold/gallium/pkg/config"
	"github.com/manifold/gallium/pkg/toolkit/headless"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appConfig = `
app:
  ui: true
status:
  title: "●"
  items:
    - title: Docs
      action: open
      with: {target: "https://example.com"}
    - title: Edit in vim
      action: open
      with: {target: notes.txt, app: vim}
    - title: Ping
      action: notify
      with: {text: pong, image: icon.png}
    - title: "-"
    - title: Quit
      action: quit
menus:
  - title: File
    items:
      - title: Close
        shortcut: cmd+w
`

func newTestApp(t *testing.T) (*bridge.Bridge, *headless.Toolkit, *actions, *[]string) {
	fs := afero.NewMemMapFs()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, goimage.NewRGBA(goimage.Rect(0, 0, 16, 16))))
	require.NoError(t, afero.WriteFile(fs, "icon.png", buf.Bytes(), 0644))

	tk := headless.New()
	b := bridge.New(tk, bridge.WithFs(fs), bridge.WithoutSignals())

	var opened []string
	acts := &actions{
		Bridge: b,
		Fs:     fs,
		open: func(target string) error {
			opened = append(opened, target)
			return nil
		},
		openWith: func(target, app string) error {
			opened = append(opened, app+":"+target)
			return nil
		},
	}

	cfg, err := config.Parse([]byte(appConfig))
	require.NoError(t, err)
	require.NoError(t, setup(b, cfg, acts))
	return b, tk, acts, &opened
}

func TestSetup(t *testing.T) {
	_, tk, _, _ := newTestApp(t)

	assert.True(t, tk.UIApplication())
	require.NotNil(t, tk.MainMenu())
	assert.Equal(t, "File", tk.MainMenu().ItemAt(0).Title())

	items := tk.StatusItems()
	require.Len(t, items, 1)
	assert.Equal(t, "●", items[0].Title)
	assert.Equal(t, 24, items[0].Width)
	require.NotNil(t, items[0].Menu)
	assert.Equal(t, 5, items[0].Menu.Len())
	assert.True(t, items[0].Menu.ItemAt(3).IsSeparator())
}

func TestActions(t *testing.T) {
	b, tk, _, opened := newTestApp(t)

	errs := make(chan error, 1)
	go func() { errs <- b.Run() }()
	<-tk.Ready()
	require.Eventually(t, b.App().Serving, time.Second, time.Millisecond)

	status := tk.StatusItems()[0].Menu
	require.NoError(t, tk.Activate(status.ItemAt(0)))
	require.NoError(t, tk.Activate(status.ItemAt(1)))
	assert.Equal(t, []string{"https://example.com", "vim:notes.txt"}, *opened)

	require.NoError(t, tk.Activate(status.ItemAt(2)))
	require.Eventually(t, func() bool {
		return len(tk.Notifications()) == 1
	}, time.Second, time.Millisecond)
	n := tk.Notifications()[0]
	assert.Equal(t, "Ping", n.Title)
	assert.Equal(t, "pong", n.InformativeText)
	require.NotNil(t, n.Image)
	assert.Equal(t, 16, n.Image.Width())

	require.NoError(t, tk.Activate(status.ItemAt(4)))
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("quit action did not stop the app")
	}
}

func TestPerformNotifyMissingImage(t *testing.T) {
	_, _, acts, _ := newTestApp(t)
	err := acts.perform(config.NotifyAction{Title: "x", Image: "missing.png"})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := loadConfig(fs, config.DefaultPath, false)
	require.NoError(t, err)
	assert.False(t, cfg.HasStatus())

	_, err = loadConfig(fs, config.DefaultPath, true)
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "app.yaml", []byte(appConfig), 0644))
	cfg, err = loadConfig(fs, "app.yaml", true)
	require.NoError(t, err)
	assert.True(t, cfg.HasStatus())
}

func TestChangeBeforeRunStillTerminates(t *testing.T) {
	b, _, _, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := make(chan error, 1)
	go func() { errs <- b.RunContext(ctx) }()
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("a change before Run did not terminate the app")
	}
	assert.Equal(t, app.StateTerminated, b.App().State())
}
