package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Publisher handles dispatching jobs to the queue
type Publisher struct {
	driver    Driver
	queueName string
	maxTries  int
}

// NewPublisher creates a new Publisher pushing to queueName. maxTries
// below 1 is treated as a single attempt.
func NewPublisher(driver Driver, queueName string, maxTries int) *Publisher {
	if maxTries < 1 {
		maxTries = 1
	}
	return &Publisher{driver: driver, queueName: queueName, maxTries: maxTries}
}

// Dispatch pushes a new job to the publisher's queue
func (p *Publisher) Dispatch(ctx context.Context, jobName string, data any) (string, error) {
	return p.DispatchToQueue(ctx, p.queueName, jobName, data)
}

// DispatchToQueue pushes a new job to a specific queue and returns its UUID
func (p *Publisher) DispatchToQueue(ctx context.Context, queueName string, jobName string, data any) (string, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode job data: %w", err)
	}

	maxTries := p.maxTries
	payload := Payload{
		UUID:        uuid.New().String(),
		DisplayName: jobName,
		MaxTries:    &maxTries,
		Data:        dataBytes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	if err := p.driver.Push(ctx, queueName, body); err != nil {
		return "", fmt.Errorf("failed to push job %s: %w", jobName, err)
	}
	return payload.UUID, nil
}
