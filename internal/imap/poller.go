package imap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emersion/go-imap"

	"github.com/90umut/mailtrash/internal/intake"
	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/models"
)

const maxHoldoff = 30 * time.Minute

// Poller periodically drains unseen messages from an upstream mailbox into
// the intake handler. Messages older than maxAge are skipped: they would
// expire from the store before anyone could open the view link.
type Poller struct {
	cfg       models.IMAPConfig
	handler   *intake.Handler
	maxAge    time.Duration
	newClient func() Client

	failures atomic.Int32
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewPoller creates a Poller for the configured mailbox.
func NewPoller(cfg models.IMAPConfig, handler *intake.Handler, maxAge time.Duration) *Poller {
	if cfg.RefreshTime <= 0 {
		cfg.RefreshTime = 30 * time.Second
	}
	return &Poller{
		cfg:       cfg,
		handler:   handler,
		maxAge:    maxAge,
		newClient: func() Client { return NewStandardClient() },
		stop:      make(chan struct{}),
	}
}

// Start launches the polling loop.
func (p *Poller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.cfg.RefreshTime)
		defer ticker.Stop()

		for {
			if wait := p.holdoff(); wait > 0 {
				logging.Log.Warnf("IMAP failed %d times, waiting %s before next attempt", p.failures.Load(), wait)
				select {
				case <-time.After(wait):
				case <-p.stop:
					return
				}
			}

			p.pollOnce()

			select {
			case <-ticker.C:
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop terminates the polling loop and waits for it to exit.
func (p *Poller) Stop() {
	close(p.stop)
	p.wg.Wait()
}

// pollOnce connects, drains unseen messages and disconnects. A fresh
// connection per cycle keeps the loop immune to half-dead sessions.
func (p *Poller) pollOnce() {
	client := p.newClient()

	if err := client.Connect(p.cfg.Server); err != nil {
		p.failures.Add(1)
		logging.Log.Errorf("IMAP connection error: %v", err)
		return
	}
	defer func() { _ = client.Close() }()

	p.failures.Store(0)

	if err := client.Login(p.cfg.Login, p.cfg.Password); err != nil {
		logging.Log.Errorf("IMAP login error: %v", err)
		return
	}

	if err := client.SelectMailbox(p.cfg.MailBox); err != nil {
		logging.Log.Errorf("IMAP mailbox selection error: %v", err)
		return
	}

	uids, err := client.ListUnseenUIDs(p.maxAge)
	if err != nil {
		logging.Log.Errorf("IMAP search error: %v", err)
		return
	}

	for _, uid := range uids {
		if err := p.processMessage(client, uid); err != nil {
			logging.Log.Errorf("Error processing message UID %d: %v", uid, err)
		}
	}
}

// processMessage fetches one message, applies the age cut and hands the raw
// body to intake. The message is marked seen once handed over, whatever the
// notification outcome: delivery is never retried.
func (p *Poller) processMessage(client Client, uid uint32) error {
	msg, err := client.FetchMessage(uid)
	if err != nil {
		return err
	}

	if p.tooOldAt(msg.InternalDate, time.Now()) {
		logging.Log.Debugf("Message UID %d is older than %v (date: %v), skipping", uid, p.maxAge, msg.InternalDate)
		return nil
	}

	section := &imap.BodySectionName{}
	body := msg.GetBody(section)
	if body == nil {
		return fmt.Errorf("no body section for UID %d", uid)
	}

	p.handler.Handle("", nil, body)

	return client.MarkSeen(uid)
}

// tooOldAt allows testing the age cut with a fixed "now". A zero internal
// date means the server did not report one; those messages pass.
func (p *Poller) tooOldAt(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	return date.Before(now.Add(-p.maxAge))
}

// holdoff returns how long to pause before reconnecting after repeated
// connection failures, growing exponentially from five failures on.
func (p *Poller) holdoff() time.Duration {
	failures := p.failures.Load()
	if failures < 5 {
		return 0
	}

	base := 5 * time.Minute
	maxSteps := int32(10)

	n := failures - 5
	if n > maxSteps {
		n = maxSteps
	}

	backoff := base * time.Duration(1<<n)
	if backoff > maxHoldoff {
		backoff = maxHoldoff
	}
	return backoff
}
