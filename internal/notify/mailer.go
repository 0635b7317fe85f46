package notify

import (
	"context"
	"fmt"
	"waitlist/internal/models"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Mailer sends the welcome email over SMTP.
type Mailer struct {
	cfg     models.NotifyConfig
	siteURL string
	dialer  *gomail.Dialer
}

// NewMailer creates a Mailer from the notify configuration. The returned
// mailer is usable even when SMTP is not configured; Send then reports an
// error and Configured returns false.
func NewMailer(cfg models.NotifyConfig, siteURL string) *Mailer {
	m := &Mailer{cfg: cfg, siteURL: siteURL}
	if cfg.Configured() {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return m
}

// Configured reports whether every SMTP setting needed to send is present.
func (m *Mailer) Configured() bool {
	return m.dialer != nil
}

// Send delivers the welcome email to the given address. gomail dials
// synchronously; callers that must not block run Send through the Dispatcher.
func (m *Mailer) Send(ctx context.Context, to string) (*Receipt, error) {
	if m.dialer == nil {
		return nil, fmt.Errorf("smtp is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), m.cfg.SMTPHost)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "You're on the waitlist")
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/plain", m.plainBody())
	msg.AddAlternative("text/html", m.htmlBody())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	return &Receipt{
		MessageID: messageID,
		Accepted:  []string{to},
	}, nil
}

func (m *Mailer) plainBody() string {
	body := "Thanks for joining the waitlist. We'll let you know as soon as your spot opens up."
	if m.siteURL != "" {
		body += "\n\nIn the meantime: " + m.siteURL
	}
	return body
}

func (m *Mailer) htmlBody() string {
	body := "<p>Thanks for joining the waitlist. We'll let you know as soon as your spot opens up.</p>"
	if m.siteURL != "" {
		body += fmt.Sprintf(`<p>In the meantime: <a href="%s">%s</a></p>`, m.siteURL, m.siteURL)
	}
	return body
}
