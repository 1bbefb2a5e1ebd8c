package notification

import "context"

// Email is a plain-text message to a single recipient.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type EmailSender interface {
	SendEmail(ctx context.Context, email Email) error
}
