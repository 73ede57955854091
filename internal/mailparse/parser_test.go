package mailparse

import (
	"strings"
	"testing"
)

func rawMessage(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\r\n"))
}

func TestParsePlainText(t *testing.T) {
	raw := rawMessage(
		"From: Alice <alice@example.org>",
		"To: inbox@mail.example.org",
		"Subject: Your code",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Your code is 482913",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if msg.From != "alice@example.org" {
		t.Errorf("From = %q, want 'alice@example.org'", msg.From)
	}
	if msg.ToPrimary != "inbox@mail.example.org" {
		t.Errorf("ToPrimary = %q, want 'inbox@mail.example.org'", msg.ToPrimary)
	}
	if msg.Subject != "Your code" {
		t.Errorf("Subject = %q, want 'Your code'", msg.Subject)
	}
	if strings.TrimSpace(msg.TextBody) != "Your code is 482913" {
		t.Errorf("TextBody = %q, want the plain body", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		t.Errorf("HTMLBody = %q, want empty", msg.HTMLBody)
	}
	if msg.TraceID == "" {
		t.Error("TraceID not assigned")
	}
	if msg.ReceivedAt.IsZero() {
		t.Error("ReceivedAt not set")
	}
}

func TestParseMultipartAlternative(t *testing.T) {
	raw := rawMessage(
		"From: noreply@example.org",
		"To: inbox@mail.example.org",
		"Subject: Confirm your account",
		"Content-Type: multipart/alternative; boundary=frontier42",
		"",
		"--frontier42",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Confirm at https://example.org/confirm?id=1",
		"--frontier42",
		"Content-Type: text/html; charset=utf-8",
		"",
		`<p><a href="https://example.org/confirm?id=1">Confirm</a></p>`,
		"--frontier42--",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !strings.Contains(msg.TextBody, "https://example.org/confirm?id=1") {
		t.Errorf("TextBody = %q, missing the plain part", msg.TextBody)
	}
	if !strings.Contains(msg.HTMLBody, "<a href=") {
		t.Errorf("HTMLBody = %q, missing the HTML part", msg.HTMLBody)
	}
}

func TestParseMissingSubject(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{
			name: "No subject header",
			lines: []string{
				"From: alice@example.org",
				"To: inbox@mail.example.org",
				"Content-Type: text/plain",
				"",
				"body",
			},
		},
		{
			name: "Blank subject header",
			lines: []string{
				"From: alice@example.org",
				"To: inbox@mail.example.org",
				"Subject: ",
				"Content-Type: text/plain",
				"",
				"body",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(rawMessage(tt.lines...))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if msg.Subject != NoSubject {
				t.Errorf("Subject = %q, want %q", msg.Subject, NoSubject)
			}
		})
	}
}

func TestParseEncodedSubject(t *testing.T) {
	raw := rawMessage(
		"From: alice@example.org",
		"To: inbox@mail.example.org",
		"Subject: =?UTF-8?Q?Votre_code_de_v=C3=A9rification?=",
		"Content-Type: text/plain",
		"",
		"4821",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if msg.Subject != "Votre code de vérification" {
		t.Errorf("Subject = %q, want decoded UTF-8", msg.Subject)
	}
}

func TestParseMultipleRecipients(t *testing.T) {
	raw := rawMessage(
		"From: alice@example.org",
		"To: first@mail.example.org, second@mail.example.org",
		"Subject: Hi",
		"Content-Type: text/plain",
		"",
		"body",
	)

	msg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(msg.To) != 2 {
		t.Fatalf("To has %d entries, want 2", len(msg.To))
	}
	if msg.ToPrimary != "first@mail.example.org" {
		t.Errorf("ToPrimary = %q, want the first recipient", msg.ToPrimary)
	}
}

func TestParseGarbage(t *testing.T) {
	raw := rawMessage(
		"this line is not a header",
		"",
		"body",
	)

	if _, err := Parse(raw); err == nil {
		t.Error("Parse() expected an error for a malformed header block")
	}
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain ASCII",
			input:    "Hello World",
			expected: "Hello World",
			wantErr:  false,
		},
		{
			name:     "UTF-8 encoded",
			input:    "=?UTF-8?Q?Important_:_comment_mettre_=C3=A0_jour?=",
			expected: "Important : comment mettre à jour",
			wantErr:  false,
		},
		{
			name:     "ISO-8859-1 encoded",
			input:    "=?ISO-8859-1?Q?Caf=E9?=",
			expected: "Café",
			wantErr:  false,
		},
		{
			name:     "Base64 encoded",
			input:    "=?UTF-8?B?SGVsbG8gV29ybGQ=?=",
			expected: "Hello World",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("DecodeHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExtractEmailAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple email",
			input:    "noreply@example.org",
			expected: "noreply@example.org",
		},
		{
			name:     "Email with name",
			input:    "Example <noreply@example.org>",
			expected: "noreply@example.org",
		},
		{
			name:     "Email with quotes",
			input:    `"Example Team" <noreply@example.org>`,
			expected: "noreply@example.org",
		},
		{
			name:     "No email",
			input:    "Just some text",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractEmailAddress(tt.input)
			if got != tt.expected {
				t.Errorf("extractEmailAddress() = %v, want %v", got, tt.expected)
			}
		})
	}
}
