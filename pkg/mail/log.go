package mail

import (
	"context"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/femi9outfit/storefront/pkg/smtp"
	"github.com/rs/zerolog/log"
)

// LogMailer implements Mailer by logging messages
type LogMailer struct {
	cfg config.MailConfig
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(cfg config.MailConfig) *LogMailer {
	return &LogMailer{cfg: cfg}
}

// Send logs the message details
func (m *LogMailer) Send(ctx context.Context, msg *Message) (Result, error) {
	logger := log.Ctx(ctx).With().
		Str("mailer", "log").
		Str("from", smtp.FormatAddress(m.cfg.FromAddress, m.cfg.FromName)).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Logger()

	logger.Info().Msg("Sending email")
	logger.Info().Msgf("Body:\n%s", msg.Body)

	return Result{Sent: true}, nil
}
