// Package imap polls an upstream mailbox and feeds new messages into the
// intake pipeline. It exists for deployments that cannot take mail on port
// 25 and point a regular mailbox at this service instead.
package imap

import (
	"time"

	"github.com/emersion/go-imap"
)

// Client abstracts the handful of IMAP operations the poller needs, so tests
// can swap in a fake mailbox.
type Client interface {
	Connect(server string) error
	Login(user, password string) error
	SelectMailbox(name string) error
	ListUnseenUIDs(since time.Duration) ([]uint32, error)
	FetchMessage(uid uint32) (*imap.Message, error)
	MarkSeen(uid uint32) error
	Close() error
}
