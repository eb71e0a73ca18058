// Package notification builds user notifications and hands them to the
// platform for one-shot delivery.
package notification

import (
	"errors"
	"sync/atomic"

	"github.com/manifold/gallium/pkg/image"
	"github.com/rs/xid"
)

var ErrDelivered = errors.New("notification already delivered")

// Notification is a descriptor. Building one has no side effects.
type Notification struct {
	Title             string
	Subtitle          string
	InformativeText   string
	Image             *image.Image
	Identifier        string
	HasActionButton   bool
	HasReplyButton    bool
	ActionButtonTitle string
	OtherButtonTitle  string

	delivered int32
}

// New builds a notification. An empty identifier is replaced with a
// generated one.
func New(title, subtitle, informativeText string, img *image.Image, identifier string,
	hasActionButton, hasReplyButton bool, actionButtonTitle, otherButtonTitle string) *Notification {
	if identifier == "" {
		identifier = xid.New().String()
	}
	return &Notification{
		Title:             title,
		Subtitle:          subtitle,
		InformativeText:   informativeText,
		Image:             img,
		Identifier:        identifier,
		HasActionButton:   hasActionButton,
		HasReplyButton:    hasReplyButton,
		ActionButtonTitle: actionButtonTitle,
		OtherButtonTitle:  otherButtonTitle,
	}
}

// Delivered reports whether the notification was handed off.
func (n *Notification) Delivered() bool {
	return atomic.LoadInt32(&n.delivered) == 1
}

// markDelivered fails if the notification was handed off before.
func (n *Notification) markDelivered() error {
	if !atomic.CompareAndSwapInt32(&n.delivered, 0, 1) {
		return ErrDelivered
	}
	return nil
}
