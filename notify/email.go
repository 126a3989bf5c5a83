// Package notify delivers alerts over SMTP.
package notify

import (
	"gopkg.in/gomail.v2"

	"github.com/liops/vigil/config"
)

// EmailNotifier sends alert mail through the configured SMTP server.
// STARTTLS and authentication are handled by the dialer.
type EmailNotifier struct {
	cfg config.Email
}

// New creates a notifier from the email config.
func New(cfg config.Email) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// Send delivers one alert message.
func (n *EmailNotifier) Send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.Sender)
	m.SetHeader("To", n.cfg.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.SMTPServer, n.cfg.SMTPPort, n.cfg.Sender, n.cfg.Password)
	return d.DialAndSend(m)
}
