package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the delivery transport configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

func (c SMTPConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPSender delivers messages over SMTP with STARTTLS.
type SMTPSender struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender for the given transport configuration.
func NewSMTPSender(config SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(config.Host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if config.Port <= 0 {
		return nil, fmt.Errorf("smtp port is required")
	}
	if strings.TrimSpace(config.From) == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	if config.Username == "" {
		config.Username = config.From
	}

	return &SMTPSender{config: config, send: smtp.SendMail}, nil
}

// Deliver sends one plain text message. The error carries the transport
// reason so callers can report it without re-deriving context.
func (s *SMTPSender) Deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("recipient address is required")
	}

	msg := strings.Join([]string{
		"From: " + s.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := s.send(s.config.addr(), auth, s.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}
