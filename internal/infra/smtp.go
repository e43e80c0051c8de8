package infra

import (
	"fmt"
	"net/smtp"

	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outgoing notification mail.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text message to every recipient in to.
func (m *Mailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
