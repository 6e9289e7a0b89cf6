package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"

	"blogapi/internal/logging"
)

type smtpConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Mailer sends plain-text email over SMTP with TLS, or through the Plunk API
// when MAIL_PROVIDER=plunk. With neither configured it logs the message and
// succeeds, which keeps local development queue-complete without a mail server.
type Mailer struct {
	provider string
	smtp     smtpConfig
	plunk    plunkConfig
	log      logging.Logger
}

// NewMailerFromEnv loads mailer configuration from the environment.
// SMTP needs SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM.
func NewMailerFromEnv(log logging.Logger) *Mailer {
	return &Mailer{
		provider: os.Getenv("MAIL_PROVIDER"),
		smtp: smtpConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		plunk: plunkConfigFromEnv(),
		log:   log,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.provider == "plunk" || (m.provider == "" && m.plunk.APIKey != "") {
		return m.sendViaPlunk(to, subject, body)
	}
	if m.smtp.Host == "" {
		m.log.Info(context.Background(), "mailer not configured, logging instead",
			"to", to, "subject", subject)
		return nil
	}
	return m.sendViaSMTP(to, subject, body)
}

func (m *Mailer) sendViaSMTP(to, subject, body string) error {
	addr := m.smtp.Host + ":" + m.smtp.Port

	msg := fmt.Sprintf("From: %s\r\n", m.smtp.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"utf-8\"\r\n"
	msg += "\r\n" + body + "\r\n"

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.smtp.Host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.smtp.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", m.smtp.Username, m.smtp.Password, m.smtp.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.smtp.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return c.Quit()
}
