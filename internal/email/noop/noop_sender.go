package noop

import (
	"context"
	"log"

	"sartor/internal/domain"
	"sartor/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs to stdout. Used in
// development where no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendBookingConfirmation(_ context.Context, toEmail, toName string, booking *domain.Booking) error {
	log.Printf("[NOOP EMAIL] Booking confirmation for %s (%s): booking %s at %s",
		toName, toEmail, booking.ID, booking.ScheduledAt.Format("2006-01-02 15:04"))
	return nil
}

func (s *noopSender) SendOrderReady(_ context.Context, toEmail, toName string, order *domain.Order) error {
	log.Printf("[NOOP EMAIL] Order ready notice for %s (%s): order %s", toName, toEmail, order.ID)
	return nil
}
