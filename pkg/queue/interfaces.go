package queue

import (
	"context"
)

// Job is one message popped from a queue backend.
type Job struct {
	// ID is backend specific: a row id or an SQS receipt handle.
	ID      string
	Body    []byte
	Payload *Payload
}

// Handler processes a decoded job.
type Handler func(ctx context.Context, job *Job) error

// Driver is a queue backend.
type Driver interface {
	// Pop blocks until a job is available or ctx is done.
	Pop(ctx context.Context, queueName string) (*Job, error)
	Push(ctx context.Context, queueName string, body []byte) error
	// Ack marks a popped job as done. Backends that remove on pop do nothing.
	Ack(ctx context.Context, job *Job) error
}

// FailedJobProvider stores jobs that ran out of attempts.
type FailedJobProvider interface {
	Log(ctx context.Context, connection string, queue string, payload []byte, exception string) error
}
