package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends alerts to a single fixed chat via the Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates against the Bot API. An unreachable API
// or a bad token surfaces here, at startup, rather than on first delivery.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// Name returns the channel name.
func (t *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify sends one HTML-formatted message with up to two URL buttons: the
// web view of the full message, and the detected action link when present.
// The Bot API client carries no context support, so ctx is accepted only for
// interface symmetry.
func (t *TelegramNotifier) Notify(_ context.Context, n *Notification) error {
	msg := tgbotapi.NewMessage(t.chatID, telegramText(n))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonURL("Open message", n.ViewURL),
	}
	if n.ActionLink != "" {
		row = append(row, tgbotapi.NewInlineKeyboardButtonURL("Open link", n.ActionLink))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// telegramText renders the HTML alert body. Sender and subject are escaped;
// the code stays verbatim inside its <code> span so it can be tapped to copy.
func telegramText(n *Notification) string {
	var b strings.Builder
	b.WriteString("\U0001F4EC <b>")
	b.WriteString(escapeMarkup(n.From))
	b.WriteString("</b>\n")
	b.WriteString(escapeMarkup(n.Subject))
	if n.Code != "" {
		b.WriteString("\n\nCode: <code>")
		b.WriteString(n.Code)
		b.WriteString("</code>")
	}
	return b.String()
}
