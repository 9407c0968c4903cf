package notification

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type sentEmail struct {
	to      []string
	subject string
	html    string
	text    string
}

type recordingSender struct {
	sent []sentEmail
	err  error
}

func (s *recordingSender) SendHTML(to []string, subject, htmlBody, textBody string) error {
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, html: htmlBody, text: textBody})
	return s.err
}

func newTestNotifier(t *testing.T, sender Sender) Notifier {
	t.Helper()
	n, err := NewEmailNotifier(sender, "https://upsy.in/", 24*time.Hour)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	return n
}

func TestSendVerification(t *testing.T) {
	sender := &recordingSender{}
	n := newTestNotifier(t, sender)

	if err := n.SendVerification("asha@example.com", "Asha <b>", "abc123"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}
	got := sender.sent[0]

	if got.to[0] != "asha@example.com" || got.subject != verificationSubject {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	link := "https://upsy.in/verify-email?token=abc123"
	if !strings.Contains(got.html, link) || !strings.Contains(got.text, link) {
		t.Fatalf("verification link missing from bodies")
	}
	if !strings.Contains(got.html, "24 hours") {
		t.Fatalf("expected expiry in html body")
	}
	if strings.Contains(got.html, "Asha <b>") {
		t.Fatalf("name was not escaped in html body")
	}
}

func TestSendWelcome(t *testing.T) {
	sender := &recordingSender{}
	n := newTestNotifier(t, sender)

	if err := n.SendWelcome("asha@example.com", "Asha"); err != nil {
		t.Fatalf("send: %v", err)
	}

	got := sender.sent[0]
	if got.subject != welcomeSubject {
		t.Fatalf("subject = %q", got.subject)
	}
	if !strings.Contains(got.html, "Welcome to Upsy, Asha!") {
		t.Fatalf("greeting missing from html body")
	}
	if !strings.Contains(got.html, "https://upsy.in/auth/login") {
		t.Fatalf("login link missing from html body")
	}
}

func TestSendPropagatesSenderError(t *testing.T) {
	want := errors.New("smtp down")
	n := newTestNotifier(t, &recordingSender{err: want})

	if err := n.SendWelcome("asha@example.com", "Asha"); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestVerificationURLEscapesToken(t *testing.T) {
	got := VerificationURL("https://upsy.in", "a b&c")
	if got != "https://upsy.in/verify-email?token=a+b%26c" {
		t.Fatalf("VerificationURL = %q", got)
	}
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{24 * time.Hour, "24 hours"},
		{time.Hour, "1 hour"},
		{90 * time.Minute, "1h30m0s"},
	}

	for _, tt := range tests {
		if got := humanDuration(tt.in); got != tt.want {
			t.Errorf("humanDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
