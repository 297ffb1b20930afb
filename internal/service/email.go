package service

import (
	"context"
	"fmt"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// NewEmailService returns the sender selected by cfg.Provider.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.Provider == "sendgrid" {
		return NewSendGridEmailService(cfg.SendGridAPIKey, cfg.FromAddress, cfg.FromName)
	}
	return NewLogEmailService()
}

type sendGridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) Send(ctx context.Context, msg domain.EmailMessage) error {
	if msg.Recipient == "" {
		return domain.NewValidationError("recipient", "is required")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.Recipient)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	logger.ExternalServiceCall("sendgrid", "Send", "recipient", msg.Recipient, "subject", msg.Subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "recipient", msg.Recipient)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.Recipient, err)
	}
	return nil
}

type logEmailService struct{}

// NewLogEmailService returns a sender that only writes messages to the log.
func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) Send(ctx context.Context, msg domain.EmailMessage) error {
	if msg.Recipient == "" {
		return domain.NewValidationError("recipient", "is required")
	}
	logger.InfoContext(ctx, "Email notification", "recipient", msg.Recipient, "subject", msg.Subject, "body", msg.Body)
	return nil
}
