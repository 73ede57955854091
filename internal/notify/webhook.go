package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookNotifier posts alerts as JSON to a Slack-compatible incoming
// webhook. It covers chat systems without a dedicated bot client (Slack,
// Mattermost, Discord with a compatibility endpoint).
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a notifier posting to the given webhook URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the channel name.
func (w *WebhookNotifier) Name() string {
	return "webhook"
}

// Notify posts a single {"text": ...} payload. Any non-2xx response counts
// as a failed delivery.
func (w *WebhookNotifier) Notify(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(map[string]string{"text": webhookText(n)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook post failed: %s (%s)", resp.Status, string(respBody))
	}
	return nil
}

// webhookText renders the alert as mrkdwn-flavored text. Sender and subject
// are escaped the same way as for Telegram; the code sits in a literal span.
func webhookText(n *Notification) string {
	var b strings.Builder
	b.WriteString("\U0001F4EC *")
	b.WriteString(escapeMarkup(n.From))
	b.WriteString("*\n")
	b.WriteString(escapeMarkup(n.Subject))
	if n.Code != "" {
		b.WriteString("\nCode: `")
		b.WriteString(n.Code)
		b.WriteString("`")
	}
	b.WriteString("\nView: ")
	b.WriteString(n.ViewURL)
	if n.ActionLink != "" {
		b.WriteString("\nLink: ")
		b.WriteString(n.ActionLink)
	}
	return b.String()
}
