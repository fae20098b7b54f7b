package mail

import "context"

// Message represents an email message
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"` // plain text, newline separated
}

// Result reports whether a message was handed off for delivery.
type Result struct {
	Sent bool `json:"sent"`
}

// Mailer is the interface for sending emails
type Mailer interface {
	// Send sends the given message
	Send(ctx context.Context, msg *Message) (Result, error)
}
