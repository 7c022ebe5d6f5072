package notification

import (
	"context"
	"crypto/tls"
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/sony/gobreaker"

	"hostel-backend/config"
	"hostel-backend/internal/logger"
)

// SMTPMailer relays notifications by mail. Consecutive SMTP failures open a
// circuit breaker so a dead relay does not slow down every notification.
type SMTPMailer struct {
	from    string
	dialer  *mail.Dialer
	breaker *gobreaker.CircuitBreaker
	send    func(m *mail.Message) error
}

// NewSMTPMailer builds a mailer from cfg. It returns nil when mail is not configured.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.SkipTLSVerify,
	}
	d.Timeout = 10 * time.Second

	m := &SMTPMailer{
		from:    cfg.From,
		dialer:  d,
		breaker: newBreaker("smtp-relay"),
	}
	m.send = func(msg *mail.Message) error { return d.DialAndSend(msg) }
	return m
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	log := logger.Named("notification")
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// Send mails a plain text message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	_, err := m.breaker.Execute(func() (any, error) {
		return nil, m.send(msg)
	})
	return err
}
