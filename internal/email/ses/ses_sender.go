package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"sartor/internal/domain"
	"sartor/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendBookingConfirmation(ctx context.Context, toEmail, toName string, booking *domain.Booking) error {
	when := booking.ScheduledAt.Format("Monday, 2 January 2006 at 15:04")

	subject := "Your fitting appointment is booked"
	htmlBody := buildBookingHTML(toName, when)
	textBody := fmt.Sprintf("Hi %s,\n\nYour fitting appointment is booked for %s.\n\nWe will confirm the slot shortly. If you need to reschedule, reply to this email or cancel the booking from your account.\n\nSartor", toName, when)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendOrderReady(ctx context.Context, toEmail, toName string, order *domain.Order) error {
	subject := "Your order is ready for pickup"
	htmlBody := buildOrderReadyHTML(toName, order.ID.String())
	textBody := fmt.Sprintf("Hi %s,\n\nGood news: your tailoring order %s is ready for pickup.\n\nSartor", toName, order.ID)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildBookingHTML(name, when string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Fitting appointment booked</h2>
  <p>Hi %s,</p>
  <p>Your fitting appointment is booked for:</p>
  <p style="text-align: center; margin: 30px 0; font-size: 18px; color: #333;"><strong>%s</strong></p>
  <p>We will confirm the slot shortly. If you need to reschedule, reply to this email or cancel the booking from your account.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Sartor - Tailoring Services</p>
</body>
</html>`, name, when)
}

func buildOrderReadyHTML(name, orderID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your order is ready</h2>
  <p>Hi %s,</p>
  <p>Good news: your tailoring order is ready for pickup.</p>
  <p style="word-break: break-all; color: #666;">Order reference: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Sartor - Tailoring Services</p>
</body>
</html>`, name, orderID)
}
