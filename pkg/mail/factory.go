package mail

import (
	"context"
	"fmt"

	"github.com/femi9outfit/storefront/pkg/config"
)

// NewMailer creates a new Mailer based on the configuration
func NewMailer(ctx context.Context, cfg config.MailConfig) (Mailer, error) {
	switch cfg.Mailer {
	case "smtp", "":
		return NewSMTPMailer(cfg), nil
	case "log":
		return NewLogMailer(cfg), nil
	case "ses":
		client, err := config.LoadSESClient(ctx, cfg.SESRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to load SES client: %w", err)
		}
		return NewSESMailer(client, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported mailer: %s", cfg.Mailer)
	}
}
