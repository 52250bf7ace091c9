package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type ResendMailService struct {
	client      *resend.Client
	senderEmail string
}

func NewResendMailService(apiKey, from string) *ResendMailService {
	return &ResendMailService{
		client:      resend.NewClient(apiKey),
		senderEmail: from,
	}
}

func (r *ResendMailService) SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    r.senderEmail,
		To:      []string{recipientEmail},
		Subject: subject,
		Text:    body,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (r *ResendMailService) SendHTMLEmail(ctx context.Context, recipientEmail, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    r.senderEmail,
		To:      []string{recipientEmail},
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}
