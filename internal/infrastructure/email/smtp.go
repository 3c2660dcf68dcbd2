package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/parlourcover/parlour/internal/shared/config"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

// Message is one outgoing email. Attachments are absolute file paths.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	PlainBody   string
	Attachments []string
}

type Sender interface {
	Send(msg Message) error
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	dialer      *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *SMTPEmailService) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.fromAddress, s.fromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.PlainBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	for _, path := range msg.Attachments {
		m.Attach(path)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// disabledSender is used when email.enabled is false.
type disabledSender struct {
	logger logger.Interface
}

func (d *disabledSender) Send(msg Message) error {
	d.logger.Debugw("email disabled, message dropped", "to", msg.To, "subject", msg.Subject)
	return ErrEmailServiceNotConfigured
}

// NewSender returns an SMTP sender, or one that reports
// ErrEmailServiceNotConfigured when email is disabled.
func NewSender(cfg config.EmailConfig, log logger.Interface) Sender {
	if !cfg.Enabled || cfg.SMTPHost == "" {
		log.Infow("email service disabled")
		return &disabledSender{logger: log}
	}

	log.Infow("email service initialized",
		"host", cfg.SMTPHost,
		"port", cfg.SMTPPort,
		"from", cfg.FromAddress,
	)
	return NewSMTPEmailService(cfg)
}
