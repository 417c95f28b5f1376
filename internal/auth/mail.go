package auth

import (
	"fmt"
	"net/smtp"

	"github.com/procureflow/procureflow/internal/config"
)

// Mailer sends account emails. Sending is always best-effort; callers log
// failures and move on.
type Mailer interface {
	SendPasswordSetup(toEmail, toName, token string) error
}

// SMTPMailer plain SMTP mailer
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendPasswordSetup(toEmail, toName, token string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	setupURL := fmt.Sprintf("%s/auth/set-password?token=%s", m.cfg.BaseURL, token)
	subject := "Set up your vendor account password"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour vendor account has been created. Set your password using the link below:\r\n\r\n%s\r\n\r\nIf you did not register, you can ignore this email.\r\n",
		toName, setupURL)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var a smtp.Auth
	if m.cfg.User != "" {
		a = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, a, m.cfg.From, []string{toEmail}, []byte(msg))
}
