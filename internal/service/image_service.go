package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sartor/internal/config"
	"sartor/internal/domain"
	"sartor/internal/port"
	"sartor/internal/storage/objectkey"
)

// ImageUploadInput is the DTO for order image uploads. The uploader identity
// arrives pre-verified from the auth layer.
type ImageUploadInput struct {
	OrderID     uuid.UUID
	UploaderID  uuid.UUID
	Category    domain.ImageCategory
	FileName    string
	ContentType string
	Body        io.Reader
}

// ImageService owns the order image lifecycle: staged upload into object
// storage, verified persistence, deletion, and download URL refresh.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*domain.OrderImage, error)
	Delete(ctx context.Context, orderID, imageID uuid.UUID) (bool, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error)
	RefreshDownloadURLs(ctx context.Context, images []domain.OrderImage) []domain.OrderImage
}

type imageService struct {
	imageRepo port.OrderImageRepository
	storage   port.ObjectStorage
	cfg       *config.StorageConfig
	allowed   map[string]bool
}

// NewImageService creates a new ImageService implementation.
func NewImageService(
	imageRepo port.OrderImageRepository,
	storage port.ObjectStorage,
	cfg *config.StorageConfig,
) ImageService {
	allowed := make(map[string]bool, len(cfg.AllowedImageTypes))
	for _, t := range cfg.AllowedImageTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &imageService{
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
		allowed:   allowed,
	}
}

// Upload runs the full image upload workflow: validate, stage to a local temp
// file, push to the active storage backend, verify the object landed, mint a
// presigned download URL, and only then create the database row. The row is
// never created for bytes that were not verified present in the backend; if
// the row insert fails after a verified upload, the object is deleted again
// best-effort and the persistence error is returned.
func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*domain.OrderImage, error) {
	// Validation happens before any I/O.
	if !input.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if !s.allowed[strings.ToLower(input.ContentType)] {
		return nil, domain.ErrInvalidContentType
	}

	tmpPath, err := s.stage(input)
	if err != nil {
		return nil, err
	}
	// The staged file is removed on every exit path.
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("imageService.Upload: removing temp file %s: %v", tmpPath, rmErr)
		}
	}()

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	key, err := s.storage.UploadFile(opCtx, tmpPath, "")
	if err != nil {
		log.Printf("imageService.Upload: backend write failed for order %s: %v", input.OrderID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	// The upload call returning success is not enough: verify the object is
	// actually there before anything is recorded against it.
	exists, err := s.storage.FileExists(opCtx, key)
	if err != nil {
		s.compensateDelete(key)
		return nil, fmt.Errorf("%w: verifying %q: %w", domain.ErrUploadFailed, key, err)
	}
	if !exists {
		log.Printf("imageService.Upload: object %q missing after successful upload", key)
		return nil, fmt.Errorf("%w: object %q absent after upload", domain.ErrUploadFailed, key)
	}

	url, err := s.storage.PresignedDownloadURL(opCtx, key, s.cfg.PresignExpiry())
	if err != nil {
		s.compensateDelete(key)
		return nil, fmt.Errorf("imageService.Upload: presigning %q: %w", key, err)
	}

	img := &domain.OrderImage{
		ID:          uuid.New(),
		OrderID:     input.OrderID,
		UploadedBy:  input.UploaderID,
		ObjectKey:   key,
		DownloadURL: url,
		Category:    input.Category,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		// The object is already durable but now has no record pointing at it.
		log.Printf("imageService.Upload: persisting record for %q failed, removing orphan object: %v", key, err)
		s.compensateDelete(key)
		return nil, fmt.Errorf("imageService.Upload: persisting image record: %w", err)
	}

	return img, nil
}

// stage writes the incoming stream to a uniquely named temp file, forces it to
// disk, and enforces the size limits. The caller owns removal of the file once
// staging has succeeded; on staging failure nothing is left behind.
func (s *imageService) stage(input ImageUploadInput) (string, error) {
	ext := strings.ToLower(filepath.Ext(input.FileName))
	if ext == "" {
		ext = domain.AllowedImageContentTypes[strings.ToLower(input.ContentType)]
	}

	f, err := os.CreateTemp("", "sartor-upload-*"+objectkey.NormalizeExt(ext))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	cleanupOnErr := func(cause error) (string, error) {
		f.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			log.Printf("imageService.stage: removing temp file %s: %v", tmpPath, rmErr)
		}
		return "", cause
	}

	maxBytes := s.cfg.MaxUploadSizeBytes()
	written, err := io.Copy(f, io.LimitReader(input.Body, maxBytes+1))
	if err != nil {
		return cleanupOnErr(fmt.Errorf("staging upload: %w", err))
	}
	if written > maxBytes {
		return cleanupOnErr(domain.ErrFileTooLarge)
	}
	if written == 0 {
		return cleanupOnErr(domain.ErrEmptyPayload)
	}

	// Force the bytes to stable storage before uploading from the file, so a
	// slow client cannot leave the backend with a truncated read.
	if err := f.Sync(); err != nil {
		return cleanupOnErr(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := f.Close(); err != nil {
		return cleanupOnErr(fmt.Errorf("closing temp file: %w", err))
	}
	return tmpPath, nil
}

// Delete removes the stored object first and the database row second. A crash
// in between leaves a detectable orphan row instead of an undiscoverable
// orphan object. Returns false without error when the record does not exist
// or belongs to a different order.
func (s *imageService) Delete(ctx context.Context, orderID, imageID uuid.UUID) (bool, error) {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("imageService.Delete: %w", err)
	}
	if img.OrderID != orderID {
		return false, nil
	}

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	deleted, err := s.storage.DeleteFile(opCtx, img.ObjectKey)
	if err != nil {
		// Leave the row in place: it still points at an object we could not
		// confirm gone.
		return false, fmt.Errorf("imageService.Delete: removing object %q: %w", img.ObjectKey, err)
	}
	if !deleted {
		log.Printf("imageService.Delete: object %q was already absent", img.ObjectKey)
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("imageService.Delete: %w", err)
	}
	return true, nil
}

// ListByOrder returns an order's images with download URLs refreshed at serve
// time.
func (s *imageService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderImage, error) {
	images, err := s.imageRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("imageService.ListByOrder: %w", err)
	}
	return s.RefreshDownloadURLs(ctx, images), nil
}

// RefreshDownloadURLs mints a fresh presigned URL for each record's existing
// object key. A failure on one record is logged and leaves that record's
// previous URL untouched; the batch never aborts. No database write happens
// here: freshness is serve-time only.
func (s *imageService) RefreshDownloadURLs(ctx context.Context, images []domain.OrderImage) []domain.OrderImage {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	for i := range images {
		url, err := s.storage.PresignedDownloadURL(opCtx, images[i].ObjectKey, s.cfg.PresignExpiry())
		if err != nil {
			log.Printf("imageService.RefreshDownloadURLs: refreshing %q: %v", images[i].ObjectKey, err)
			continue
		}
		images[i].DownloadURL = url
	}
	return images
}

// compensateDelete removes an uploaded object whose record never came to
// exist. Failure is logged, never escalated: there is no row referencing the
// object, so the worst outcome is an orphan object flagged in the logs.
func (s *imageService) compensateDelete(key string) {
	opCtx, cancel := s.opCtx(context.Background())
	defer cancel()

	if _, err := s.storage.DeleteFile(opCtx, key); err != nil {
		log.Printf("imageService: compensating delete of orphan object %q failed: %v", key, err)
		return
	}
	log.Printf("imageService: removed orphan object %q", key)
}

// opCtx bounds a storage call with the configured operation timeout.
func (s *imageService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}
