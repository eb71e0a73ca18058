package systray

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/notification"
)

func deliver(n *notification.Notification, log logging.Logger) error {
	script := fmt.Sprintf("display notification %s with title %s",
		strconv.Quote(n.InformativeText), strconv.Quote(n.Title))
	if n.Subtitle != "" {
		script += " subtitle " + strconv.Quote(n.Subtitle)
	}
	logging.Debugf(log, "osascript: %s", script)
	return exec.Command("osascript", "-e", script).Run()
}
