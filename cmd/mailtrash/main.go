package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gosmtp "github.com/emersion/go-smtp"
	"github.com/spf13/cobra"

	"github.com/90umut/mailtrash/internal/config"
	"github.com/90umut/mailtrash/internal/imap"
	"github.com/90umut/mailtrash/internal/intake"
	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/models"
	"github.com/90umut/mailtrash/internal/notify"
	smtpserver "github.com/90umut/mailtrash/internal/smtp"
	"github.com/90umut/mailtrash/internal/store"
	"github.com/90umut/mailtrash/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mailtrash",
		Short: "Catch-all mail sink that turns incoming messages into chat notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("mailtrash failed: %v", err)
	}
}

func run(cfg *models.Config) error {
	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	tlsConfig, err := loadTLS(cfg)
	if err != nil {
		return err
	}

	notifier, err := selectNotifier(cfg)
	if err != nil {
		return err
	}
	logging.Log.Infof("Notifications go to %s", notifier.Name())

	st := store.New(cfg.Store.TTL, cfg.Store.SweepInterval)
	st.StartSweeper()

	handler := intake.NewHandler(st, notifier, cfg.ViewBaseURL())

	smtpSrv := smtpserver.NewServer(cfg, handler, tlsConfig)
	webSrv := web.NewServer(cfg, st, tlsConfig)

	errCh := make(chan error, 2)

	go func() {
		logging.Log.Infof("SMTP server listening on %s for domain %s", cfg.SMTP.Listen, cfg.Domain)
		if err := smtpSrv.ListenAndServe(); err != nil && !errors.Is(err, gosmtp.ErrServerClosed) {
			errCh <- fmt.Errorf("smtp server: %w", err)
		}
	}()

	go func() {
		logging.Log.Infof("Web server listening on %s, messages at %s/view/", cfg.Web.Listen, cfg.ViewBaseURL())
		if err := webSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web server: %w", err)
		}
	}()

	var poller *imap.Poller
	if cfg.IMAP.Enabled() {
		poller = imap.NewPoller(cfg.IMAP, handler, cfg.Store.TTL)
		poller.Start()
		logging.Log.Infof("IMAP poller watching %s on %s every %s", cfg.IMAP.MailBox, cfg.IMAP.Server, cfg.IMAP.RefreshTime)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logging.Log.Infof("Received %s, shutting down", sig)
	case runErr = <-errCh:
		logging.Log.Errorf("Server failed: %v", runErr)
	}

	shutdown(poller, webSrv, smtpSrv, st)
	return runErr
}

// loadTLS reads the certificate pair named in the configuration. A
// configured pair that cannot be loaded aborts startup instead of
// silently falling back to plaintext.
func loadTLS(cfg *models.Config) (*tls.Config, error) {
	if cfg.Web.TLSCert == "" {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(cfg.Web.TLSCert, cfg.Web.TLSKey)
	if err != nil {
		return nil, fmt.Errorf("load TLS key pair: %w", err)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

// selectNotifier picks the first configured channel: Telegram, then
// webhook, then the log fallback so the process always has somewhere to
// announce mail.
func selectNotifier(cfg *models.Config) (notify.Notifier, error) {
	switch {
	case cfg.Telegram.Enabled():
		return notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
	case cfg.Webhook.Enabled():
		return notify.NewWebhookNotifier(cfg.Webhook.URL), nil
	default:
		logging.Log.Warn("No notification channel configured, notifications will only be logged")
		return notify.NewLogNotifier(), nil
	}
}

func shutdown(poller *imap.Poller, webSrv *web.Server, smtpSrv *gosmtp.Server, st *store.Store) {
	if poller != nil {
		poller.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := webSrv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Web server shutdown: %v", err)
	}

	if err := smtpSrv.Close(); err != nil {
		logging.Log.Errorf("SMTP server close: %v", err)
	}

	st.Stop()
	logging.Log.Info("Shutdown complete")
}
