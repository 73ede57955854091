package models

import "time"

// Config represents the application configuration
type Config struct {
	Domain   string         `yaml:"domain" validate:"required"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Web      WebConfig      `yaml:"web"`
	Store    StoreConfig    `yaml:"store"`
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	IMAP     IMAPConfig     `yaml:"imap"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SMTPConfig represents the inbound SMTP listener configuration
type SMTPConfig struct {
	Listen         string `yaml:"listen"`
	MaxMessageSize int64  `yaml:"maxMessageSize"`
	MaxRecipients  int    `yaml:"maxRecipients"`
}

// WebConfig represents the HTTP view listener configuration
type WebConfig struct {
	Listen       string `yaml:"listen"`
	TLSCert      string `yaml:"tlsCert"`
	TLSKey       string `yaml:"tlsKey"`
	SanitizeHTML bool   `yaml:"sanitizeHtml"`
}

// StoreConfig controls how long received messages stay viewable
type StoreConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

// TelegramConfig represents Telegram bot credentials
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chatId"`
}

// Enabled reports whether Telegram delivery is configured.
func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// WebhookConfig represents a Slack-compatible webhook destination
type WebhookConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

// Enabled reports whether webhook delivery is configured.
func (c WebhookConfig) Enabled() bool {
	return c.URL != ""
}

// IMAPConfig represents the optional upstream mailbox to poll
type IMAPConfig struct {
	Server      string        `yaml:"server"`
	Login       string        `yaml:"login"`
	Password    string        `yaml:"password"`
	RefreshTime time.Duration `yaml:"refreshTime"`
	MailBox     string        `yaml:"mailbox"`
}

// Enabled reports whether the IMAP polling intake is configured.
func (c IMAPConfig) Enabled() bool {
	return c.Server != ""
}

// LoggingConfig controls log verbosity and output format
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// ViewBaseURL returns the externally reachable prefix used to build links to
// the web view. HTTPS is assumed as soon as a certificate pair is configured.
func (c *Config) ViewBaseURL() string {
	if c.Web.TLSCert != "" && c.Web.TLSKey != "" {
		return "https://" + c.Domain
	}
	return "http://" + c.Domain
}
