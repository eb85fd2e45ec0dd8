// Package mailer is the outbound mail boundary. Delivery is a
// fire-and-forget side effect: the reset flow hands a token over and never
// waits on or inspects the outcome.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"
)

// Mailer delivers a password-reset token to an account's email address.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, token string, expiry time.Time) error
}

// SMTPMailer sends over plain SMTP. The pack this service grew out of
// carries no mail library, so the stdlib client is the whole transport.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	m := &SMTPMailer{addr: fmt.Sprintf("%s:%d", host, port), from: from}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, username, token string, expiry time.Time) error {
	body := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: Reset Your Password\r\n\r\n"+
			"Hi %s,\r\n\r\nUse this token to reset your password (valid until %s):\r\n\r\n%s\r\n",
		to, m.from, username, expiry.Format(time.RFC1123), token)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(body))
}

// LogMailer is the dev/test stand-in: it logs instead of delivering. The
// token itself is never logged.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer { return &LogMailer{log: log} }

func (m *LogMailer) SendPasswordReset(_ context.Context, to, username, _ string, expiry time.Time) error {
	m.log.Info("password reset mail (not delivered)",
		zap.String("to", to),
		zap.String("username", username),
		zap.Time("expiry", expiry))
	return nil
}
