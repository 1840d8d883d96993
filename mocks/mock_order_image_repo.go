package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sartor/internal/domain"
)

// MockOrderImageRepo is a mock implementation of port.OrderImageRepository.
type MockOrderImageRepo struct {
	mock.Mock
}

func (m *MockOrderImageRepo) Create(ctx context.Context, img *domain.OrderImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *MockOrderImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderImage), args.Error(1)
}

func (m *MockOrderImageRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderImage), args.Error(1)
}

func (m *MockOrderImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
