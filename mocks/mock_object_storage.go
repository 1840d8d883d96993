package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) UploadFile(ctx context.Context, localPath, objectKey string) (string, error) {
	args := m.Called(ctx, localPath, objectKey)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) DownloadFile(ctx context.Context, objectKey, localPath string) (string, error) {
	args := m.Called(ctx, objectKey, localPath)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) FileExists(ctx context.Context, objectKey string) (bool, error) {
	args := m.Called(ctx, objectKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) DeleteFile(ctx context.Context, objectKey string) (bool, error) {
	args := m.Called(ctx, objectKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) PresignedDownloadURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) GenerateObjectName(ext string) string {
	args := m.Called(ext)
	return args.String(0)
}
