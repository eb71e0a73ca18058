package systray

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/manifold/gallium/pkg/image"
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/notification"
)

func deliver(n *notification.Notification, log logging.Logger) error {
	args := notifySendArgs(n, log)
	logging.Debugf(log, "notify-send %v", args)
	return exec.Command("notify-send", args...).Run()
}

func notifySendArgs(n *notification.Notification, log logging.Logger) []string {
	args := []string{"--app-name=gallium"}
	if n.Image != nil {
		icon := filepath.Join(os.TempDir(), "gallium-"+n.Identifier+image.Ext(n.Image.Format()))
		if err := image.WriteToFile(n.Image, icon); err != nil {
			logging.Errorf(log, "notification icon: %v", err)
		} else {
			args = append(args, "--icon="+icon)
		}
	}
	summary := n.Title
	if n.Subtitle != "" {
		summary += ": " + n.Subtitle
	}
	return append(args, summary, n.InformativeText)
}
