package mailer

import "context"

// Message is an outgoing HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers email. LogSender stands in when no provider is configured.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
