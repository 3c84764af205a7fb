package notify

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"storefront/internal/config"
)

// EmailResult reports the outcome of a single email dispatch.
type EmailResult struct {
	Success   bool
	MessageID string
}

// EmailSender is the email collaborator. Implementations may fail per call;
// callers treat every failure as non-fatal.
type EmailSender interface {
	Send(subject, htmlBody, to, replyTo string) (EmailResult, error)
}

// SMTPSender delivers mail over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(subject, htmlBody, to, replyTo string) (EmailResult, error) {
	messageID := fmt.Sprintf("<%s@storefront>", uuid.NewString())

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return EmailResult{}, err
	}
	return EmailResult{Success: true, MessageID: messageID}, nil
}
