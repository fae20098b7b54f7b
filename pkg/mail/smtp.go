package mail

import (
	"context"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/femi9outfit/storefront/pkg/smtp"
)

// SMTPMailer implements Mailer with the raw SMTP submission client.
// Every Send opens its own connection.
type SMTPMailer struct {
	client *smtp.Client
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg config.MailConfig, opts ...smtp.Option) *SMTPMailer {
	return &SMTPMailer{client: smtp.NewClient(SMTPConfig(cfg), opts...)}
}

// SMTPConfig maps mail settings onto the SMTP client configuration.
func SMTPConfig(cfg config.MailConfig) smtp.Config {
	return smtp.Config{
		Host:      cfg.Host,
		Port:      cfg.Port,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Secure:    cfg.ImplicitTLS(),
		FromEmail: cfg.FromAddress,
		FromName:  cfg.FromName,
		Timeout:   cfg.Timeout,
	}
}

// Send sends the given message using SMTP. An unconfigured mailer
// returns an unsent Result and no error.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) (Result, error) {
	res, err := m.client.Send(ctx, smtp.Mail{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	return Result{Sent: res.Sent}, err
}
