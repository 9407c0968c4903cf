package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	verificationSubject = "Verify your email address - Upsy"
	welcomeSubject      = "Welcome to Upsy!"
)

// Sender delivers a rendered email. *mailer.Mailer satisfies it.
type Sender interface {
	SendHTML(to []string, subject, htmlBody, textBody string) error
}

// Notifier sends the account lifecycle emails.
type Notifier interface {
	SendVerification(email, name, token string) error
	SendWelcome(email, name string) error
}

type verificationData struct {
	Name            string
	VerificationURL string
	ExpiresIn       string
	Year            int
}

type welcomeData struct {
	Name     string
	LoginURL string
	Year     int
}

type emailNotifier struct {
	sender     Sender
	templates  *template.Template
	appBaseURL string
	tokenTTL   time.Duration
	now        func() time.Time
}

// NewEmailNotifier parses the embedded templates and returns a Notifier that
// links back to appBaseURL.
func NewEmailNotifier(sender Sender, appBaseURL string, tokenTTL time.Duration) (Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &emailNotifier{
		sender:     sender,
		templates:  tmpl,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}, nil
}

// VerificationURL is the page a user opens to confirm their address.
func VerificationURL(appBaseURL, token string) string {
	return strings.TrimRight(appBaseURL, "/") + "/verify-email?token=" + url.QueryEscape(token)
}

func (n *emailNotifier) SendVerification(email, name, token string) error {
	data := verificationData{
		Name:            name,
		VerificationURL: VerificationURL(n.appBaseURL, token),
		ExpiresIn:       humanDuration(n.tokenTTL),
		Year:            n.now().Year(),
	}

	html, err := n.render("verification.html", data)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nPlease verify your email address by opening this link:\n%s\n\nThe link expires in %s.\n",
		name, data.VerificationURL, data.ExpiresIn,
	)

	return n.sender.SendHTML([]string{email}, verificationSubject, html, text)
}

func (n *emailNotifier) SendWelcome(email, name string) error {
	data := welcomeData{
		Name:     name,
		LoginURL: n.appBaseURL + "/auth/login",
		Year:     n.now().Year(),
	}

	html, err := n.render("welcome.html", data)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Hi %s,\n\nYour email is verified and your Upsy account is active.\n", name)

	return n.sender.SendHTML([]string{email}, welcomeSubject, html, text)
}

func (n *emailNotifier) render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := n.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
