// Package email sends transactional mail over SMTP. Mail is best-effort:
// an unconfigured mailer is a no-op rather than an error, so billing flows
// never fail on a missing mail setup.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/retry"
)

// Config holds the SMTP settings. The mailer is considered configured only
// when all fields are set.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends mail through one SMTP account. Transient delivery failures
// are retried with backoff.
type Mailer struct {
	cfg  Config
	log  *logger.Logger
	send sendFunc
}

// NewMailer creates a mailer. A nil logger falls back to a no-op logger.
func NewMailer(cfg Config, log *logger.Logger) *Mailer {
	if log == nil {
		log = logger.Nop()
	}
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// Configured reports whether all SMTP settings are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Port != 0 && m.cfg.Username != "" && m.cfg.Password != ""
}

// SubscriptionConfirmation carries the details of a completed checkout.
// Zero-valued fields are omitted from the mail body.
type SubscriptionConfirmation struct {
	Amount        float64
	Currency      string
	StartDate     string
	EndDate       string
	TransactionID string
}

// SendSubscriptionConfirmation mails a subscription receipt. It returns nil
// without sending when the mailer is not configured.
func (m *Mailer) SendSubscriptionConfirmation(ctx context.Context, to string, details SubscriptionConfirmation) error {
	if !m.Configured() {
		m.log.Warn().Str("to", to).Msg("SMTP not configured, skipping confirmation email")
		return nil
	}
	if to == "" {
		return retry.NewPermanent(fmt.Errorf("empty recipient"))
	}

	msg := m.buildMessage(to, details)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	err := retry.Do(ctx, func() error {
		return m.send(addr, auth, m.cfg.Username, []string{to}, msg)
	}, retry.DefaultConfig.WithRetryIf(retry.SkipPermanent))
	if err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("failed to send confirmation email")
		return fmt.Errorf("send confirmation email: %w", err)
	}

	m.log.Info().Str("to", to).Msg("confirmation email sent")
	return nil
}

// buildMessage renders the confirmation mail.
func (m *Mailer) buildMessage(to string, details SubscriptionConfirmation) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.Username)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your Flight Comparator subscription is active\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	lines := []string{
		"Hello,",
		"",
		"Thank you for subscribing! Your Flight Comparator subscription is now active.",
		"",
	}
	if details.Amount > 0 && details.Currency != "" {
		lines = append(lines, fmt.Sprintf("- Amount paid: %.2f %s", details.Amount, strings.ToUpper(details.Currency)))
	}
	if details.StartDate != "" {
		lines = append(lines, "- Activation date: "+details.StartDate)
	}
	if details.EndDate != "" {
		lines = append(lines, "- Next renewal: "+details.EndDate+" (yearly)")
	}
	lines = append(lines,
		"",
		"Your plan includes:",
		"  - Unlimited searches for one year",
		"  - Priority support",
		"  - Unlimited CSV export",
		"",
	)
	if details.TransactionID != "" {
		lines = append(lines, "Transaction ID: "+details.TransactionID)
	}
	lines = append(lines, "", "Safe travels!")

	b.WriteString(strings.Join(lines, "\r\n"))
	return []byte(b.String())
}
