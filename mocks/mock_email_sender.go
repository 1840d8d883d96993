package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sartor/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendBookingConfirmation(ctx context.Context, toEmail, toName string, booking *domain.Booking) error {
	args := m.Called(ctx, toEmail, toName, booking)
	return args.Error(0)
}

func (m *MockEmailSender) SendOrderReady(ctx context.Context, toEmail, toName string, order *domain.Order) error {
	args := m.Called(ctx, toEmail, toName, order)
	return args.Error(0)
}
