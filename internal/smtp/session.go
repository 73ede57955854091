package smtp

import (
	"io"

	"github.com/emersion/go-smtp"

	"github.com/90umut/mailtrash/internal/intake"
)

// Session collects one SMTP transaction and hands the payload to intake.
type Session struct {
	handler *intake.Handler
	from    string
	to      []string
}

// Mail is called when the MAIL FROM command is received. Any sender is fine.
func (s *Session) Mail(from string, _ *smtp.MailOptions) error {
	s.from = from
	return nil
}

// Rcpt is called when the RCPT TO command is received. Any recipient is
// fine; all mail lands in the same place.
func (s *Session) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

// Data receives the message payload. The transaction is acknowledged no
// matter what intake makes of the bytes, so the sending relay never queues a
// retry for mail this host has already decided to drop.
func (s *Session) Data(r io.Reader) error {
	s.handler.Handle(s.from, s.to, r)
	return nil
}

// Reset is called when the RSET command is received.
func (s *Session) Reset() {
	s.from = ""
	s.to = nil
}

// Logout is called when the connection is closed.
func (s *Session) Logout() error {
	return nil
}
