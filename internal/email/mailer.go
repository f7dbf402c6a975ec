package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/giftable/giftable-server/internal/logger"
)

// Mailer sends transactional mail over plain SMTP. The default target is a
// local mailhog-style relay, so no auth or TLS is configured.
type Mailer struct {
	addr   string
	from   string
	logger *logger.Logger
}

// NewMailer creates a mailer pointed at the given SMTP address.
func NewMailer(addr, from string, logger *logger.Logger) *Mailer {
	return &Mailer{addr: addr, from: from, logger: logger}
}

// SendPasswordReset delivers the reset link to the account's email address.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	body := "You requested a password reset for your Giftable account.\r\n" +
		"\r\n" +
		"Click the link below to reset your password (valid for 1 hour):\r\n" +
		resetURL + "\r\n" +
		"\r\n" +
		"If you didn't request this, you can safely ignore this email.\r\n"

	return m.send(ctx, to, "Reset your Giftable password", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	msg := []byte(
		"From: \"Giftable\" <" + m.from + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=utf-8\r\n" +
			"\r\n" + body)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.addr, err)
	}

	m.logger.Debug("Mailer: sent email", "to", to, "subject", subject, "smtp_addr", m.addr)
	return nil
}
