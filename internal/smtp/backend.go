// Package smtp hosts the inbound listener. It accepts mail for anyone from
// anyone without authentication: this host is a notification sink, not a
// relay, and nothing it stores outlives the TTL.
package smtp

import (
	"github.com/emersion/go-smtp"

	"github.com/90umut/mailtrash/internal/intake"
	"github.com/90umut/mailtrash/internal/logging"
)

// Backend creates one anonymous session per connection.
type Backend struct {
	handler *intake.Handler
}

// NewBackend creates a Backend feeding the given intake handler.
func NewBackend(handler *intake.Handler) *Backend {
	return &Backend{handler: handler}
}

// NewSession is called for every incoming connection.
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	logging.Log.Debugf("New SMTP connection from %s", c.Conn().RemoteAddr())
	return &Session{handler: b.handler}, nil
}
