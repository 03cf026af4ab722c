// Package mailer delivers transactional email over SMTP. From the
// caller's perspective it is a fire-and-forget sink: SendResetEmailAsync
// logs failures internally and never reports them upstream, so a broken
// mail server cannot leak account-existence signals to the requester.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message with both bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP settings loaded at startup.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
	BaseURL  string // link prefix for reset URLs
}

// Mailer sends email through one SMTP endpoint.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New constructs a Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers e synchronously.
func (m *Mailer) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	msg := m.buildMessage(e)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

// SendResetEmailAsync builds the password-reset email and delivers it on
// a separate goroutine. Failures are logged, never returned: the HTTP
// response to a forgot-password request must not depend on the sink.
func (m *Mailer) SendResetEmailAsync(toAddress, resetToken, displayName string) {
	e := BuildResetEmail(ResetEmailData{
		DisplayName: displayName,
		ResetLink:   strings.TrimRight(m.cfg.BaseURL, "/") + "/reset-password?token=" + resetToken,
	})
	e.To = toAddress

	go func() {
		if err := m.Send(e); err != nil {
			m.log.Error("password reset email failed", zap.Error(err))
			return
		}
		m.log.Info("password reset email sent", zap.String("to", toAddress))
	}()
}

// buildMessage assembles a multipart/alternative MIME message.
func (m *Mailer) buildMessage(e Email) []byte {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	const boundary = "studysync-alt"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, e.TextBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
