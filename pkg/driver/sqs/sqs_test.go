package sqs

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/femi9outfit/storefront/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const queueURL = "https://sqs.ap-south-1.amazonaws.com/123456789012/mail"

type MockSQS struct {
	mock.Mock
}

func (m *MockSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*sqs.SendMessageOutput), args.Error(1)
}

func (m *MockSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*sqs.DeleteMessageOutput), args.Error(1)
}

func TestSQSDriver_PopAndAck(t *testing.T) {
	client := new(MockSQS)
	driver := NewSQSDriver(client, queueURL)

	client.On("ReceiveMessage", mock.Anything, mock.MatchedBy(func(in *sqs.ReceiveMessageInput) bool {
		return aws.ToString(in.QueueUrl) == queueURL && in.WaitTimeSeconds == 20
	})).Return(&sqs.ReceiveMessageOutput{
		Messages: []types.Message{{ReceiptHandle: aws.String("rh-1"), Body: aws.String(`{"uuid":"1"}`)}},
	}, nil)
	client.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.ReceiptHandle) == "rh-1"
	})).Return(&sqs.DeleteMessageOutput{}, nil)

	job, err := driver.Pop(context.Background(), "mail")
	require.NoError(t, err)
	assert.Equal(t, "rh-1", job.ID)
	assert.Equal(t, []byte(`{"uuid":"1"}`), job.Body)

	require.NoError(t, driver.Ack(context.Background(), job))
	client.AssertExpectations(t)
}

func TestSQSDriver_PopEmpty(t *testing.T) {
	client := new(MockSQS)
	client.On("ReceiveMessage", mock.Anything, mock.Anything).Return(&sqs.ReceiveMessageOutput{}, nil)

	_, err := NewSQSDriver(client, queueURL).Pop(context.Background(), "mail")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSQSDriver_Push(t *testing.T) {
	client := new(MockSQS)
	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		return aws.ToString(in.MessageBody) == `{"displayName":"mail:send"}`
	})).Return(&sqs.SendMessageOutput{}, nil)

	var d queue.Driver = NewSQSDriver(client, queueURL)
	require.NoError(t, d.Push(context.Background(), "mail", []byte(`{"displayName":"mail:send"}`)))
	client.AssertExpectations(t)
}
