package notify

import (
	"context"

	"github.com/90umut/mailtrash/internal/logging"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes alerts to the process log instead of a chat channel.
// It is the fallback when no channel is configured, which makes dry runs and
// local testing possible without credentials.
type LogNotifier struct{}

// NewLogNotifier creates the log-only notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Name returns the channel name.
func (l *LogNotifier) Name() string {
	return "log"
}

// Notify records the alert at info level. It never fails.
func (l *LogNotifier) Notify(_ context.Context, n *Notification) error {
	logging.Log.WithFields(logrus.Fields{
		"from":    n.From,
		"subject": n.Subject,
		"code":    n.Code,
		"link":    n.ActionLink,
		"view":    n.ViewURL,
	}).Info("New mail notification")
	return nil
}
