package models

import "time"

// Message represents a normalized inbound email snapshot. Fields are filled
// once at intake and never mutated afterwards; the web view and the
// notification path both read the same copy.
type Message struct {
	ID         string
	From       string
	To         []string
	ToPrimary  string
	Subject    string
	TextBody   string
	HTMLBody   string
	ReceivedAt time.Time
	TraceID    string
}
