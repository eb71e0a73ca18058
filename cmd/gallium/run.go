package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifold/gallium/pkg/bridge"
	"github.com/manifold/gallium/pkg/config"
	"github.com/manifold/gallium/pkg/image"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/logging/zap"
	"github.com/manifold/gallium/pkg/toolkit/systray"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	configPath string
	watchMode  bool
)

// `gallium run` command
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs a tray app",
		Long:  "Runs the tray app described by the config file until it is quit.",
		Args:  cobra.NoArgs,
		Run:   runApp,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the app config")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "restart when the config changes")
	return cmd
}

func runApp(cmd *cobra.Command, args []string) {
	var log logging.Logger
	if devMode {
		log = zap.NewLogger()
	} else {
		log = zap.NewProductionLogger()
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, configPath, cmd.Flags().Changed("config"))
	fatal(err)

	tk := systray.New(log)
	if cfg.Status.Icon != "" {
		tk.Icon, err = loadIcon(fs, cfg.Status.Icon)
		fatal(err)
	}
	b := bridge.New(tk, bridge.WithLogger(log), bridge.WithFs(fs))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var w *watcher
	if watchMode {
		w, err = newWatcher(configPath, cancel, log)
		fatal(err)
		b.App().OnTerminate(w)
	}

	fatal(setup(b, cfg, &actions{Bridge: b, Fs: fs, Logger: log}))
	fatal(b.RunContext(ctx))

	if w != nil && w.Changed() {
		logging.Infof(log, "%s changed, restarting", configPath)
		fatal(restart())
	}
}

// loadConfig reads the config at path. The default path may be missing.
func loadConfig(fs afero.Fs, path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(fs, path)
	}
	return config.LoadOptional(fs, path)
}

// loadIcon returns the tray icon at path. ICO files are passed through for
// Windows; anything else is decoded and re-encoded as PNG.
func loadIcon(fs afero.Fs, path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return afero.ReadFile(fs, path)
	}
	img, err := (&image.Codec{Fs: fs}).ReadFile(path)
	if err != nil {
		return nil, err
	}
	return img.PNG()
}

// setup installs the menus of cfg.
func setup(b *bridge.Bridge, cfg *config.Config, acts *actions) error {
	if cfg.App.UI {
		if err := b.SetUIApplication(); err != nil {
			return err
		}
	}
	if len(cfg.Menus) > 0 {
		specs, err := cfg.MainMenu(acts.bind)
		if err != nil {
			return err
		}
		if _, err := b.SetMenu(specs); err != nil {
			return err
		}
	}
	if cfg.HasStatus() {
		entries, err := cfg.StatusMenu(acts.bind)
		if err != nil {
			return err
		}
		if _, err := b.AddStatusMenu(cfg.Status.Width, cfg.Status.Title, cfg.Status.Highlight, entries...); err != nil {
			return err
		}
	}
	return nil
}

// actions runs item actions. They are called on the event loop goroutine.
type actions struct {
	*bridge.Bridge
	Fs     afero.Fs
	Logger logging.Logger

	open     func(target string) error
	openWith func(target, app string) error
}

func (a *actions) bind(action config.Action) func() {
	return func() {
		if err := a.perform(action); err != nil {
			logging.Errorf(a.Logger, "%s: %v", action.Name(), err)
		}
	}
}

func (a *actions) perform(action config.Action) error {
	switch action := action.(type) {
	case config.QuitAction:
		a.Quit()
	case config.OpenAction:
		if action.App != "" {
			return a.runWith(action.Target, action.App)
		}
		return a.run(action.Target)
	case config.NotifyAction:
		var img *image.Image
		if action.Image != "" {
			var err error
			img, err = (&image.Codec{Fs: a.Fs}).ReadFile(action.Image)
			if err != nil {
				return err
			}
		}
		return a.Post(action.Title, action.Subtitle, action.Text, img)
	default:
		return fmt.Errorf("unsupported action: %T", action)
	}
	return nil
}

func (a *actions) run(target string) error {
	if a.open != nil {
		return a.open(target)
	}
	return open.Run(target)
}

func (a *actions) runWith(target, app string) error {
	if a.openWith != nil {
		return a.openWith(target, app)
	}
	return open.RunWith(target, app)
}
