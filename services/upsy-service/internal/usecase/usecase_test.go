package usecase

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/config"
)

type sentVerification struct {
	email string
	name  string
	token string
}

type fakeNotifier struct {
	mu            sync.Mutex
	verifications []sentVerification
	welcomes      []string
	err           error
}

func (n *fakeNotifier) SendVerification(email, name, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verifications = append(n.verifications, sentVerification{email: email, name: name, token: token})
	return n.err
}

func (n *fakeNotifier) SendWelcome(email, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
	return n.err
}

func (n *fakeNotifier) lastToken(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.verifications) == 0 {
		t.Fatal("no verification email sent")
	}
	return n.verifications[len(n.verifications)-1].token
}

var errNotifier = errors.New("smtp unavailable")

func testConfig() *config.AppServiceConfig {
	return &config.AppServiceConfig{
		AppBaseURL:  "https://upsy.in",
		StaffEmails: []string{"ops@upsy.in"},
		Token: config.TokenConfig{
			SessionSecret:              "0123456789abcdef0123456789abcdef",
			SessionExpiresIn:           time.Hour,
			Issuer:                     "upsy-api",
			EmailVerificationExpiresIn: 24 * time.Hour,
		},
	}
}

func testLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// fixedClock returns a clock that can be moved forward by tests.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Now()}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGenerateVerificationToken(t *testing.T) {
	a, err := generateVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := generateVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64", len(a))
	}
	if a == b {
		t.Fatal("tokens should differ")
	}
}
