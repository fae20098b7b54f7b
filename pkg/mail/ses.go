package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/femi9outfit/storefront/pkg/smtp"
)

// SESAPI is the part of the SES v2 client the mailer uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer implements Mailer with the AWS SES v2 API.
type SESMailer struct {
	client SESAPI
	cfg    config.MailConfig
}

// NewSESMailer creates a new SESMailer
func NewSESMailer(client SESAPI, cfg config.MailConfig) *SESMailer {
	return &SESMailer{client: client, cfg: cfg}
}

// Send sends a simple text message through SES.
func (m *SESMailer) Send(ctx context.Context, msg *Message) (Result, error) {
	if m.cfg.FromAddress == "" {
		return Result{}, fmt.Errorf("ses: from address is not configured")
	}

	from := m.cfg.FromAddress
	if m.cfg.FromName != "" {
		from = smtp.FormatAddress(m.cfg.FromAddress, m.cfg.FromName)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return Result{}, fmt.Errorf("ses: send email: %w", err)
	}
	return Result{Sent: true}, nil
}
