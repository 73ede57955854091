package mailparse

import (
	"fmt"
	"io"
	"mime"
	"regexp"
	"strings"
	"time"

	"github.com/90umut/mailtrash/internal/models"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// NoSubject is recorded when a message arrives without a usable subject.
const NoSubject = "(no subject)"

// Parse reads one raw RFC 822 message and captures the fields the rest of
// the pipeline cares about. Messages without a text/plain part are fine: the
// body fields just stay empty.
func Parse(r io.Reader) (*models.Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("create mail reader: %w", err)
	}

	msg := &models.Message{
		ReceivedAt: time.Now(),
		TraceID:    uuid.New().String(),
	}

	header := mr.Header

	msg.From = extractEmailAddress(header.Get("From"))

	if toList, err := header.AddressList("To"); err == nil {
		for _, addr := range toList {
			msg.To = append(msg.To, addr.Address)
		}
		if len(toList) > 0 {
			msg.ToPrimary = toList[0].Address
		}
	}

	subject, err := DecodeHeader(header.Get("Subject"))
	if err != nil {
		subject = header.Get("Subject")
	}
	if strings.TrimSpace(subject) == "" {
		subject = NoSubject
	}
	msg.Subject = subject

	// Walk inline parts, keeping the first text/plain and the first
	// text/html body. Attachments and nested containers are skipped.
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read mail part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, err := h.ContentType()
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			if msg.TextBody != "" {
				continue
			}
			if body, err := io.ReadAll(p.Body); err == nil {
				msg.TextBody = string(body)
			}
		case "text/html":
			if msg.HTMLBody != "" {
				continue
			}
			if body, err := io.ReadAll(p.Body); err == nil {
				msg.HTMLBody = string(body)
			}
		}
	}

	return msg, nil
}

// Simple regex to extract the address part of a "From" header, which may
// carry a display name around it
func extractEmailAddress(fromHeader string) string {
	re := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	return re.FindString(fromHeader)
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
