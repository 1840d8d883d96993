package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sartor/internal/config"
	"sartor/internal/domain"
	"sartor/internal/service"
	"sartor/mocks"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Backend:              "minio",
		Bucket:               "test-bucket",
		MaxUploadSizeMB:      1,
		PresignExpiryMinutes: 60,
		AllowedImageTypes:    []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		OpTimeout:            5 * time.Second,
	}
}

func jpegContent() []byte {
	header := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	return append(header, bytes.Repeat([]byte{0x00}, 256)...)
}

func uploadInput(body []byte) service.ImageUploadInput {
	return service.ImageUploadInput{
		OrderID:     uuid.New(),
		UploaderID:  uuid.New(),
		Category:    domain.ImageCategoryBefore,
		FileName:    "fitting.jpg",
		ContentType: "image/jpeg",
		Body:        bytes.NewReader(body),
	}
}

func TestImageService_Upload_Success(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	input := uploadInput(jpegContent())
	key := "orders/2026/08/28/" + uuid.New().String() + ".jpg"

	storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").Return(key, nil)
	storage.On("FileExists", mock.Anything, key).Return(true, nil)
	storage.On("PresignedDownloadURL", mock.Anything, key, cfg.PresignExpiry()).
		Return("https://storage.example/"+key, nil)
	imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderImage")).Return(nil)

	img, err := svc.Upload(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, key, img.ObjectKey)
	assert.Equal(t, "https://storage.example/"+key, img.DownloadURL)
	assert.Equal(t, input.OrderID, img.OrderID)
	assert.Equal(t, input.UploaderID, img.UploadedBy)
	assert.Equal(t, domain.ImageCategoryBefore, img.Category)

	imageRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestImageService_Upload_InvalidContentType_NoBackendCalls(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	input := uploadInput(jpegContent())
	input.ContentType = "application/pdf"
	input.FileName = "fitting.pdf"

	img, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidContentType)
	assert.Nil(t, img)
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	imageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImageService_Upload_InvalidCategory_NoBackendCalls(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	input := uploadInput(jpegContent())
	input.Category = "portrait"

	img, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Nil(t, img)
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_EmptyPayload(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	img, err := svc.Upload(context.Background(), uploadInput(nil))

	assert.ErrorIs(t, err, domain.ErrEmptyPayload)
	assert.Nil(t, img)
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_FileTooLarge(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	oversized := bytes.Repeat([]byte{0xAB}, int(cfg.MaxUploadSizeBytes())+1)
	img, err := svc.Upload(context.Background(), uploadInput(oversized))

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Nil(t, img)
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_BackendWriteFails_NoRecord(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").
		Return("", domain.ErrStorageUnavailable)

	img, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Nil(t, img)
	imageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImageService_Upload_VerificationFindsNothing_NoRecord(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	key := "orders/2026/08/28/" + uuid.New().String() + ".jpg"
	storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").Return(key, nil)
	storage.On("FileExists", mock.Anything, key).Return(false, nil)

	img, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Nil(t, img)
	imageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "PresignedDownloadURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageService_Upload_PersistFails_CompensatingDelete(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	key := "orders/2026/08/28/" + uuid.New().String() + ".jpg"
	storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").Return(key, nil)
	storage.On("FileExists", mock.Anything, key).Return(true, nil)
	storage.On("PresignedDownloadURL", mock.Anything, key, cfg.PresignExpiry()).
		Return("https://storage.example/"+key, nil)
	imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderImage")).
		Return(errors.New("connection reset"))
	storage.On("DeleteFile", mock.Anything, key).Return(true, nil)

	img, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

	assert.Error(t, err)
	assert.Nil(t, img)
	storage.AssertCalled(t, "DeleteFile", mock.Anything, key)
}

func TestImageService_Upload_TempFileRemovedOnEveryPath(t *testing.T) {
	key := "orders/2026/08/28/" + uuid.New().String() + ".jpg"

	newSvc := func() (*mocks.MockOrderImageRepo, *mocks.MockObjectStorage, service.ImageService) {
		imageRepo := new(mocks.MockOrderImageRepo)
		storage := new(mocks.MockObjectStorage)
		cfg := testStorageConfig()
		return imageRepo, storage, service.NewImageService(imageRepo, storage, &cfg)
	}
	assertStagedGone := func(t *testing.T, staged string) {
		assert.NotEmpty(t, staged)
		_, statErr := os.Stat(staged)
		assert.True(t, os.IsNotExist(statErr), "staged file %s still on disk", staged)
	}

	t.Run("success", func(t *testing.T) {
		imageRepo, storage, svc := newSvc()
		var staged string
		storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").
			Run(func(args mock.Arguments) { staged = args.String(1) }).
			Return(key, nil)
		storage.On("FileExists", mock.Anything, key).Return(true, nil)
		storage.On("PresignedDownloadURL", mock.Anything, key, mock.Anything).
			Return("https://storage.example/"+key, nil)
		imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderImage")).Return(nil)

		_, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

		assert.NoError(t, err)
		assertStagedGone(t, staged)
	})

	t.Run("backend write failure", func(t *testing.T) {
		_, storage, svc := newSvc()
		var staged string
		storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").
			Run(func(args mock.Arguments) { staged = args.String(1) }).
			Return("", domain.ErrStorageUnavailable)

		_, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

		assert.Error(t, err)
		assertStagedGone(t, staged)
	})

	t.Run("persistence failure", func(t *testing.T) {
		imageRepo, storage, svc := newSvc()
		var staged string
		storage.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "").
			Run(func(args mock.Arguments) { staged = args.String(1) }).
			Return(key, nil)
		storage.On("FileExists", mock.Anything, key).Return(true, nil)
		storage.On("PresignedDownloadURL", mock.Anything, key, mock.Anything).
			Return("https://storage.example/"+key, nil)
		imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderImage")).
			Return(errors.New("connection reset"))
		storage.On("DeleteFile", mock.Anything, key).Return(true, nil)

		_, err := svc.Upload(context.Background(), uploadInput(jpegContent()))

		assert.Error(t, err)
		assertStagedGone(t, staged)
	})
}

func TestImageService_Delete_RecordMissing_NoError(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	imageID := uuid.New()
	imageRepo.On("GetByID", mock.Anything, imageID).Return(nil, domain.ErrNotFound)

	deleted, err := svc.Delete(context.Background(), uuid.New(), imageID)

	assert.NoError(t, err)
	assert.False(t, deleted)
	storage.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
}

func TestImageService_Delete_DifferentOrder_ReportsNotFound(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	imageID := uuid.New()
	img := &domain.OrderImage{ID: imageID, OrderID: uuid.New(), ObjectKey: "orders/2026/08/28/kept.jpg"}
	imageRepo.On("GetByID", mock.Anything, imageID).Return(img, nil)

	// A valid image ID under the wrong order path must not delete anything.
	deleted, err := svc.Delete(context.Background(), uuid.New(), imageID)

	assert.NoError(t, err)
	assert.False(t, deleted)
	storage.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
	imageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestImageService_Delete_ObjectAlreadyAbsent_RowStillRemoved(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	imageID := uuid.New()
	img := &domain.OrderImage{ID: imageID, OrderID: uuid.New(), ObjectKey: "orders/2026/08/28/gone.jpg"}
	imageRepo.On("GetByID", mock.Anything, imageID).Return(img, nil)
	storage.On("DeleteFile", mock.Anything, img.ObjectKey).Return(false, nil)
	imageRepo.On("Delete", mock.Anything, imageID).Return(nil)

	deleted, err := svc.Delete(context.Background(), img.OrderID, imageID)

	assert.NoError(t, err)
	assert.True(t, deleted)
	imageRepo.AssertCalled(t, "Delete", mock.Anything, imageID)
}

func TestImageService_Delete_StorageError_RowKept(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	imageID := uuid.New()
	img := &domain.OrderImage{ID: imageID, OrderID: uuid.New(), ObjectKey: "orders/2026/08/28/stuck.jpg"}
	imageRepo.On("GetByID", mock.Anything, imageID).Return(img, nil)
	storage.On("DeleteFile", mock.Anything, img.ObjectKey).
		Return(false, domain.ErrStorageUnavailable)

	deleted, err := svc.Delete(context.Background(), img.OrderID, imageID)

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.False(t, deleted)
	imageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestImageService_RefreshDownloadURLs_PartialFailureKeepsOldURL(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	images := []domain.OrderImage{
		{ID: uuid.New(), ObjectKey: "orders/a.jpg", DownloadURL: "https://old/a"},
		{ID: uuid.New(), ObjectKey: "orders/b.jpg", DownloadURL: "https://old/b"},
	}
	storage.On("PresignedDownloadURL", mock.Anything, "orders/a.jpg", cfg.PresignExpiry()).
		Return("https://new/a", nil)
	storage.On("PresignedDownloadURL", mock.Anything, "orders/b.jpg", cfg.PresignExpiry()).
		Return("", domain.ErrObjectNotFound)

	out := svc.RefreshDownloadURLs(context.Background(), images)

	assert.Equal(t, "https://new/a", out[0].DownloadURL)
	assert.Equal(t, "https://old/b", out[1].DownloadURL)
}

func TestImageService_ListByOrder_RefreshesURLs(t *testing.T) {
	imageRepo := new(mocks.MockOrderImageRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewImageService(imageRepo, storage, &cfg)

	orderID := uuid.New()
	images := []domain.OrderImage{
		{ID: uuid.New(), OrderID: orderID, ObjectKey: "orders/a.jpg", DownloadURL: "https://old/a"},
	}
	imageRepo.On("ListByOrder", mock.Anything, orderID).Return(images, nil)
	storage.On("PresignedDownloadURL", mock.Anything, "orders/a.jpg", cfg.PresignExpiry()).
		Return("https://new/a", nil)

	out, err := svc.ListByOrder(context.Background(), orderID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "https://new/a", out[0].DownloadURL)
}
