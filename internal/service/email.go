package service

import (
	"context"
	"fmt"
	"strings"

	"leaseflow-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendDocumentRequestEmail(ctx context.Context, clientEmail, offerID string, kinds []domain.DocumentKind, customMessage string) error {
	subject := "Documents required for your leasing request"
	body := fmt.Sprintf("Hello,\n\nTo continue processing your leasing request %s we need the following documents:\n\n%s\n",
		offerID, kindList(kinds))
	if customMessage != "" {
		body += "\n" + customMessage + "\n"
	}
	body += "\nBest regards,\nThe Leaseflow Team"
	return s.send(clientEmail, subject, body)
}

func (s *emailService) SendOfferStatusNotification(ctx context.Context, email, offerID string, status domain.WorkflowStatus, reason string) error {
	subject := fmt.Sprintf("Your leasing request %s: %s", offerID, status)
	body := fmt.Sprintf("Hello,\n\nYour leasing request %s is now %s.", offerID, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nNote: %s", reason)
	}
	body += "\n\nBest regards,\nThe Leaseflow Team"
	return s.send(email, subject, body)
}

func (s *emailService) SendDocumentReminderEmail(ctx context.Context, clientEmail, offerID string, missing []domain.DocumentKind) error {
	subject := "Reminder: documents still needed for your leasing request"
	body := fmt.Sprintf("Hello,\n\nWe are still waiting for the following documents for request %s:\n\n%s\n\nBest regards,\nThe Leaseflow Team",
		offerID, kindList(missing))
	return s.send(clientEmail, subject, body)
}

func (s *emailService) SendContractLapsedNotification(ctx context.Context, email, contractID string) error {
	subject := fmt.Sprintf("Contract %s has reached its end date", contractID)
	body := fmt.Sprintf("Hello,\n\nContract %s has passed its contractual end date and is awaiting a decision (termination or extension).\n\nBest regards,\nThe Leaseflow Team", contractID)
	return s.send(email, subject, body)
}

func kindList(kinds []domain.DocumentKind) string {
	items := make([]string, len(kinds))
	for i, k := range kinds {
		items[i] = "  - " + strings.ReplaceAll(strings.TrimPrefix(string(k), "custom:"), "_", " ")
	}
	return strings.Join(items, "\n")
}
