package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sartor/internal/domain"
	"sartor/internal/service"
)

// MockImageService is a mock implementation of service.ImageService.
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, input service.ImageUploadInput) (*domain.OrderImage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderImage), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, orderID, imageID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, imageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockImageService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderImage), args.Error(1)
}

func (m *MockImageService) RefreshDownloadURLs(ctx context.Context, images []domain.OrderImage) []domain.OrderImage {
	args := m.Called(ctx, images)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.OrderImage)
}
