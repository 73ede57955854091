// Package notify delivers new-mail alerts to the operator's chat channel.
package notify

import (
	"context"
	"strings"
)

// Notification is the channel-independent payload assembled for one message.
// ViewURL is always set; Code and ActionLink are present only when the
// extractor found something.
type Notification struct {
	From       string
	Subject    string
	Code       string
	ActionLink string
	ViewURL    string
}

// Notifier is the interface notification channels must implement. Send
// failures are terminal: callers log them and move on, they never retry.
type Notifier interface {
	// Notify delivers one alert about a received message.
	Notify(ctx context.Context, n *Notification) error

	// Name returns the human-readable name of this channel.
	Name() string
}

// Sender and subject are interpolated into markup, so the three characters
// that can break it are neutralized. Codes and links stay verbatim because
// they are always rendered inside code or preformatted spans.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
