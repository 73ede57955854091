// Package intake turns raw inbound mail into stored snapshots and chat
// notifications. Both the SMTP listener and the IMAP poller feed it.
package intake

import (
	"context"
	"io"
	"time"

	"github.com/90umut/mailtrash/internal/extract"
	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/mailparse"
	"github.com/90umut/mailtrash/internal/metrics"
	"github.com/90umut/mailtrash/internal/notify"
	"github.com/90umut/mailtrash/internal/store"
)

const notifyTimeout = 10 * time.Second

// Handler orchestrates the intake workflow:
// parse → store → extract → notify
type Handler struct {
	store    *store.Store
	notifier notify.Notifier
	baseURL  string
}

// NewHandler creates a Handler with the provided store, notification channel
// and the external base URL used to build view links.
func NewHandler(st *store.Store, notifier notify.Notifier, baseURL string) *Handler {
	return &Handler{
		store:    st,
		notifier: notifier,
		baseURL:  baseURL,
	}
}

// Handle processes one inbound message. Every failure mode is terminal for
// that message alone: unparseable mail is dropped, failed notifications are
// logged and swallowed, and the caller acknowledges the SMTP transaction in
// all cases. Envelope data fills in whatever the message headers leave
// empty.
func (h *Handler) Handle(envelopeFrom string, envelopeTo []string, raw io.Reader) {
	defer func() {
		if r := recover(); r != nil {
			logging.Log.Errorf("Recovered while handling inbound message: %v", r)
		}
	}()

	msg, err := mailparse.Parse(raw)
	if err != nil {
		metrics.MessagesDropped.Inc()
		logging.Log.WithError(err).Warn("Dropping unparseable message")
		return
	}

	locallog := logging.Log.WithField("trace_id", msg.TraceID)

	if msg.From == "" {
		msg.From = envelopeFrom
	}
	if msg.ToPrimary == "" && len(envelopeTo) > 0 {
		msg.ToPrimary = envelopeTo[0]
		msg.To = append(msg.To, envelopeTo...)
	}

	id := h.store.Put(msg)
	metrics.MessagesReceived.Inc()

	result := extract.Scan(msg.TextBody)

	notification := &notify.Notification{
		From:       msg.From,
		Subject:    msg.Subject,
		Code:       result.Code,
		ActionLink: result.Link,
		ViewURL:    h.baseURL + "/view/" + id,
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := h.notifier.Notify(ctx, notification); err != nil {
		metrics.NotificationErrors.Inc()
		locallog.WithError(err).Errorf("Notification via %s failed, message stays viewable at /view/%s", h.notifier.Name(), id)
		return
	}

	metrics.NotificationsSent.Inc()
	locallog.Infof("Notified %s about mail from %s (code found: %t, link found: %t)",
		h.notifier.Name(), msg.From, result.Code != "", result.Link != "")
}
