//go:build !darwin && !linux
// +build !darwin,!linux

package systray

import (
	"github.com/manifold/gallium/pkg/logging"
	"github.com/manifold/gallium/pkg/notification"
	"github.com/manifold/gallium/pkg/toolkit"
)

func deliver(n *notification.Notification, log logging.Logger) error {
	logging.Debugf(log, "dropping notification %s", n.Identifier)
	return toolkit.ErrUnsupported
}
