package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/90umut/mailtrash/internal/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Environment variables overriding the secret-bearing fields, so credentials
// can stay out of the configuration file.
const (
	EnvTelegramToken  = "MAILTRASH_TELEGRAM_TOKEN"
	EnvTelegramChatID = "MAILTRASH_TELEGRAM_CHAT_ID"
	EnvWebhookURL     = "MAILTRASH_WEBHOOK_URL"
	EnvIMAPPassword   = "MAILTRASH_IMAP_PASSWORD"
)

// Load reads the configuration from the specified YAML file and returns a
// Config struct with defaults and environment overrides applied.
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	config := defaults()
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// defaults returns a Config prefilled with values suitable for a single-host
// deployment behind a firewall.
func defaults() *models.Config {
	return &models.Config{
		SMTP: models.SMTPConfig{
			Listen:         ":2525",
			MaxMessageSize: 10 << 20,
			MaxRecipients:  16,
		},
		Web: models.WebConfig{
			Listen: ":8080",
		},
		Store: models.StoreConfig{
			TTL:           15 * time.Minute,
			SweepInterval: time.Minute,
		},
		IMAP: models.IMAPConfig{
			RefreshTime: 30 * time.Second,
			MailBox:     "INBOX",
		},
		Logging: models.LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func applyEnvOverrides(cfg *models.Config) {
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(EnvTelegramChatID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv(EnvWebhookURL); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv(EnvIMAPPassword); v != "" {
		cfg.IMAP.Password = v
	}
}

func validate(cfg *models.Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if (cfg.Web.TLSCert == "") != (cfg.Web.TLSKey == "") {
		return fmt.Errorf("invalid configuration: web.tlsCert and web.tlsKey must be set together")
	}
	if cfg.Store.TTL <= 0 {
		return fmt.Errorf("invalid configuration: store.ttl must be positive")
	}
	return nil
}
