package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/imanshadilshan/work-ora/internal/config"
	"github.com/imanshadilshan/work-ora/internal/relay"
)

// Sender delivers a single envelope.
type Sender interface {
	Send(msg relay.Envelope) error
}

// SMTPSender implements Sender over an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds the sender from config.
func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Send composes and delivers the email.
func (s *SMTPSender) Send(msg relay.Envelope) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
