package imap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"

	"github.com/90umut/mailtrash/internal/intake"
	"github.com/90umut/mailtrash/internal/models"
	"github.com/90umut/mailtrash/internal/notify"
	"github.com/90umut/mailtrash/internal/store"
)

type recordingNotifier struct {
	calls int
}

func (r *recordingNotifier) Notify(_ context.Context, _ *notify.Notification) error {
	r.calls++
	return nil
}

func (r *recordingNotifier) Name() string {
	return "recording"
}

type MockClient struct {
	ConnectErr error
	UIDs       []uint32
	Messages   map[uint32]*imap.Message
	Seen       []uint32
}

func (m *MockClient) Connect(string) error       { return m.ConnectErr }
func (m *MockClient) Login(string, string) error { return nil }
func (m *MockClient) SelectMailbox(string) error { return nil }
func (m *MockClient) Close() error               { return nil }

func (m *MockClient) ListUnseenUIDs(time.Duration) ([]uint32, error) {
	return m.UIDs, nil
}
func (m *MockClient) FetchMessage(uid uint32) (*imap.Message, error) {
	msg, ok := m.Messages[uid]
	if !ok {
		return nil, errors.New("no such message")
	}
	return msg, nil
}
func (m *MockClient) MarkSeen(uid uint32) error {
	m.Seen = append(m.Seen, uid)
	return nil
}

func fakeMessage(uid uint32, internalDate time.Time, lines ...string) *imap.Message {
	section := &imap.BodySectionName{}
	return &imap.Message{
		SeqNum:       uid,
		InternalDate: internalDate,
		Body: map[*imap.BodySectionName]imap.Literal{
			section: bytes.NewBufferString(strings.Join(lines, "\r\n")),
		},
	}
}

func newTestPoller(mock *MockClient) (*Poller, *store.Store, *recordingNotifier) {
	st := store.New(15*time.Minute, time.Minute)
	rec := &recordingNotifier{}
	handler := intake.NewHandler(st, rec, "http://mail.example.org")

	cfg := models.IMAPConfig{
		Server:      "imap.example.org:993",
		Login:       "inbox@example.org",
		Password:    "secret",
		RefreshTime: 30 * time.Second,
		MailBox:     "INBOX",
	}

	p := NewPoller(cfg, handler, 15*time.Minute)
	p.newClient = func() Client { return mock }
	return p, st, rec
}

func TestPollOnceDeliversFreshMail(t *testing.T) {
	mock := &MockClient{
		UIDs: []uint32{7},
		Messages: map[uint32]*imap.Message{
			7: fakeMessage(7, time.Now().Add(-time.Minute),
				"From: alice@example.org",
				"To: inbox@example.org",
				"Subject: Your code",
				"Content-Type: text/plain",
				"",
				"Code 4821",
			),
		},
	}

	p, st, rec := newTestPoller(mock)
	p.pollOnce()

	if rec.calls != 1 {
		t.Errorf("Notifier called %d times, want 1", rec.calls)
	}
	if st.Len() != 1 {
		t.Errorf("Store holds %d messages, want 1", st.Len())
	}
	if len(mock.Seen) != 1 || mock.Seen[0] != 7 {
		t.Errorf("MarkSeen calls = %v, want [7]", mock.Seen)
	}
}

func TestPollOnceSkipsStaleMail(t *testing.T) {
	mock := &MockClient{
		UIDs: []uint32{3},
		Messages: map[uint32]*imap.Message{
			3: fakeMessage(3, time.Now().Add(-time.Hour),
				"From: alice@example.org",
				"To: inbox@example.org",
				"Subject: Old news",
				"Content-Type: text/plain",
				"",
				"body",
			),
		},
	}

	p, st, rec := newTestPoller(mock)
	p.pollOnce()

	if rec.calls != 0 {
		t.Errorf("Notifier called %d times for stale mail, want 0", rec.calls)
	}
	if st.Len() != 0 {
		t.Errorf("Store holds %d messages, want 0", st.Len())
	}
	if len(mock.Seen) != 0 {
		t.Errorf("Stale message was marked seen: %v", mock.Seen)
	}
}

func TestPollOnceCountsConnectionFailures(t *testing.T) {
	mock := &MockClient{ConnectErr: errors.New("connection refused")}

	p, _, rec := newTestPoller(mock)

	p.pollOnce()
	p.pollOnce()

	if got := p.failures.Load(); got != 2 {
		t.Errorf("failures = %d, want 2", got)
	}
	if rec.calls != 0 {
		t.Errorf("Notifier called %d times, want 0", rec.calls)
	}
}

func TestTooOldAt(t *testing.T) {
	p := &Poller{maxAge: 15 * time.Minute}
	now := time.Now()

	tests := []struct {
		name    string
		date    time.Time
		wantOld bool
	}{
		{
			name:    "Five minutes ago",
			date:    now.Add(-5 * time.Minute),
			wantOld: false,
		},
		{
			name:    "At the edge of the window",
			date:    now.Add(-15 * time.Minute),
			wantOld: false,
		},
		{
			name:    "Twenty minutes ago",
			date:    now.Add(-20 * time.Minute),
			wantOld: true,
		},
		{
			name:    "One hour ago",
			date:    now.Add(-time.Hour),
			wantOld: true,
		},
		{
			name:    "Zero date always passes",
			date:    time.Time{},
			wantOld: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.tooOldAt(tt.date, now); got != tt.wantOld {
				t.Errorf("tooOldAt(%v) = %v, want %v", tt.date, got, tt.wantOld)
			}
		})
	}
}

func TestHoldoff(t *testing.T) {
	tests := []struct {
		name     string
		failures int32
		expected time.Duration
	}{
		{"No failures", 0, 0},
		{"Below the threshold", 4, 0},
		{"At the threshold", 5, 5 * time.Minute},
		{"One past the threshold", 6, 10 * time.Minute},
		{"Two past the threshold", 7, 20 * time.Minute},
		{"Capped at the maximum", 8, maxHoldoff},
		{"Way past the threshold", 40, maxHoldoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Poller{}
			p.failures.Store(tt.failures)

			if got := p.holdoff(); got != tt.expected {
				t.Errorf("holdoff() with %d failures = %v, want %v", tt.failures, got, tt.expected)
			}
		})
	}
}
