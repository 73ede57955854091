package smtp

import (
	"crypto/tls"
	"time"

	"github.com/emersion/go-smtp"

	"github.com/90umut/mailtrash/internal/intake"
	"github.com/90umut/mailtrash/internal/models"
)

// NewServer builds the inbound listener from configuration. When a TLS
// config is supplied the listener offers STARTTLS with it.
func NewServer(cfg *models.Config, handler *intake.Handler, tlsConfig *tls.Config) *smtp.Server {
	s := smtp.NewServer(NewBackend(handler))

	s.Addr = cfg.SMTP.Listen
	s.Domain = cfg.Domain
	s.ReadTimeout = 60 * time.Second
	s.WriteTimeout = 30 * time.Second
	s.MaxMessageBytes = cfg.SMTP.MaxMessageSize
	s.MaxRecipients = cfg.SMTP.MaxRecipients
	s.AllowInsecureAuth = true
	s.TLSConfig = tlsConfig

	return s
}
