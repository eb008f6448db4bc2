// Package push defines the outbound push-notification seam. Actual delivery
// (FCM or similar) lives outside this core; every implementation is
// best-effort and callers never propagate its failures.
package push

import (
	"setlist_backend/internal/logger"
)

// Notification is a single push payload.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Dispatcher fans a notification out to a set of device tokens.
type Dispatcher interface {
	Send(tokens []string, n *Notification) error
}

// LogDispatcher logs instead of delivering. Used in development and tests.
type LogDispatcher struct{}

func (d *LogDispatcher) Send(tokens []string, n *Notification) error {
	logger.Info("push notification (log dispatcher)",
		"devices", len(tokens),
		"title", n.Title,
		"body", n.Body,
	)
	return nil
}
