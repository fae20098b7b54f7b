package sqs

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/femi9outfit/storefront/pkg/queue"
)

// API is the subset of the SQS client used by the driver.
type API interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type SQSDriver struct {
	client   API
	queueUrl string
}

// NewSQSDriver creates a new SQS driver. The queue URL is fixed; queue
// names passed to Pop and Push are ignored.
func NewSQSDriver(client API, queueUrl string) *SQSDriver {
	return &SQSDriver{
		client:   client,
		queueUrl: queueUrl,
	}
}

// Pop long-polls SQS for one message. An empty poll returns
// context.DeadlineExceeded so the worker polls again.
func (s *SQSDriver) Pop(ctx context.Context, queueName string) (*queue.Job, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueUrl),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     20, // Long polling
	}

	resp, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(resp.Messages) == 0 {
		return nil, context.DeadlineExceeded
	}

	msg := resp.Messages[0]
	return &queue.Job{
		ID:   aws.ToString(msg.ReceiptHandle),
		Body: []byte(aws.ToString(msg.Body)),
	}, nil
}

// Push adds a job to SQS
func (s *SQSDriver) Push(ctx context.Context, queueName string, body []byte) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueUrl),
		MessageBody: aws.String(string(body)),
	}

	_, err := s.client.SendMessage(ctx, input)
	return err
}

// Ack deletes the job from SQS
func (s *SQSDriver) Ack(ctx context.Context, job *queue.Job) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueUrl),
		ReceiptHandle: aws.String(job.ID),
	}

	_, err := s.client.DeleteMessage(ctx, input)
	return err
}
