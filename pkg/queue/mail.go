package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/rs/zerolog/log"
)

// MailJob is the job name for queued mail.
const MailJob = "mail:send"

// MailPublisher implements mail.Mailer by queueing the message for a worker.
type MailPublisher struct {
	publisher *Publisher
}

// NewMailPublisher wraps a Publisher.
func NewMailPublisher(publisher *Publisher) *MailPublisher {
	return &MailPublisher{publisher: publisher}
}

// Send queues msg. A queued message counts as sent.
func (p *MailPublisher) Send(ctx context.Context, msg *mail.Message) (mail.Result, error) {
	id, err := p.publisher.Dispatch(ctx, MailJob, msg)
	if err != nil {
		return mail.Result{}, err
	}
	log.Ctx(ctx).Debug().Str("job_uuid", id).Str("to", msg.To).Msg("Queued email")
	return mail.Result{Sent: true}, nil
}

// MailHandler returns a handler that delivers queued messages with mailer.
func MailHandler(mailer mail.Mailer) Handler {
	return func(ctx context.Context, job *Job) error {
		var msg mail.Message
		if err := json.Unmarshal(job.Payload.Data, &msg); err != nil {
			return fmt.Errorf("failed to decode mail job: %w", err)
		}

		res, err := mailer.Send(ctx, &msg)
		if err != nil {
			return err
		}
		if !res.Sent {
			log.Ctx(ctx).Warn().Str("to", msg.To).Msg("Mailer did not send queued email")
		}
		return nil
	}
}

// RegisterMailHandler registers MailHandler under MailJob.
func RegisterMailHandler(mailer mail.Mailer) {
	Register(MailJob, MailHandler(mailer))
}
