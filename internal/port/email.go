package port

import (
	"context"

	"sartor/internal/domain"
)

// EmailSender defines the contract for sending transactional emails.
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, toEmail, toName string, booking *domain.Booking) error
	SendOrderReady(ctx context.Context, toEmail, toName string, order *domain.Order) error
}
