package service

import (
	"context"
	"fmt"

	"rentride-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService builds the SendGrid-backed mailer. With an empty API key
// the service logs instead of sending, which keeps local development quiet.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   apiKey != "",
	}
}

func (s *emailService) SendBookingCreated(ctx context.Context, email, renterName, bookingID string) error {
	subject := "Your booking is reserved"
	plain := fmt.Sprintf("Hi %s, booking %s is reserved. Complete payment to keep your slot.", renterName, bookingID)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Booking <strong>%s</strong> is reserved. Complete payment to keep your slot.</p>", renterName, bookingID)
	return s.send(ctx, email, renterName, subject, plain, html)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, email, bookingID, reason string) error {
	subject := "Your booking was cancelled"
	plain := fmt.Sprintf("Booking %s was cancelled: %s", bookingID, reason)
	html := fmt.Sprintf("<p>Booking <strong>%s</strong> was cancelled: %s</p>", bookingID, reason)
	return s.send(ctx, email, "", subject, plain, html)
}

func (s *emailService) SendPaymentConfirmed(ctx context.Context, email, bookingID string) error {
	subject := "Payment received"
	plain := fmt.Sprintf("We received your payment for booking %s.", bookingID)
	html := fmt.Sprintf("<p>We received your payment for booking <strong>%s</strong>.</p>", bookingID)
	return s.send(ctx, email, "", subject, plain, html)
}

func (s *emailService) SendBookingCompleted(ctx context.Context, email, bookingID string, settlementCents int64) error {
	subject := "Rental complete"
	plain := fmt.Sprintf("Booking %s is complete. Settled amount: %.2f.", bookingID, float64(settlementCents)/100)
	html := fmt.Sprintf("<p>Booking <strong>%s</strong> is complete. Settled amount: %.2f.</p>", bookingID, float64(settlementCents)/100)
	return s.send(ctx, email, "", subject, plain, html)
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plain, html string) error {
	if !s.enabled {
		logger.Debug("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
