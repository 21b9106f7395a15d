package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender creates a sender using the given API key and sender address.
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send dispatches one message to all recipients in a single personalization.
func (s *SendGridSender) Send(ctx context.Context, recipients []string, subject, body string, html bool) error {
	resp, err := s.client.SendWithContext(ctx, buildMessage(s.from, recipients, subject, body, html))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Printf("email sent to %d recipient(s), status %d", len(recipients), resp.StatusCode)
	return nil
}

func buildMessage(from string, recipients []string, subject, body string, html bool) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("", from))
	m.Subject = subject

	p := mail.NewPersonalization()
	for _, r := range recipients {
		p.AddTos(mail.NewEmail("", r))
	}
	m.AddPersonalizations(p)

	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}
	m.AddContent(mail.NewContent(contentType, body))

	return m
}
