// Package minio implements the local-proxy object storage variant on MinIO
// (or any S3-compatible endpoint reachable by hostname).
package minio

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sartor/internal/config"
	"sartor/internal/domain"
	"sartor/internal/port"
	"sartor/internal/storage/objectkey"
)

type minioStore struct {
	client  *minio.Client
	presign *minio.Client
	bucket  string
}

// NewMinioStore creates the MinIO-backed ObjectStorage implementation and
// ensures its bucket exists. Bucket bootstrap failure is logged, not fatal.
func NewMinioStore(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	// SigV4 signs the Host header into presigned URLs, so a URL handed to a
	// browser must be signed against the host the browser will actually hit.
	// When a public endpoint is configured, presigning goes through a second
	// client on that host; all data-path operations stay on the internal one.
	presign := client
	if cfg.PublicEndpoint != "" && cfg.PublicEndpoint != cfg.Endpoint {
		presign, err = minio.New(cfg.PublicEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("creating minio presign client: %w", err)
		}
	}

	store := &minioStore{
		client:  client,
		presign: presign,
		bucket:  cfg.Bucket,
	}
	store.ensureBucket(context.Background())
	return store, nil
}

func (s *minioStore) ensureBucket(ctx context.Context) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		log.Printf("minioStore: bucket check failed for %q: %v", s.bucket, err)
		return
	}
	if exists {
		return
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		log.Printf("minioStore: creating bucket %q failed: %v", s.bucket, err)
		return
	}
	log.Printf("minioStore: created bucket %q", s.bucket)
}

func (s *minioStore) UploadFile(ctx context.Context, localPath, key string) (string, error) {
	if key == "" {
		key = s.GenerateObjectName(filepath.Ext(localPath))
	}

	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: objectkey.ContentType(localPath),
	})
	if err != nil {
		return "", classify("upload", key, err)
	}
	return key, nil
}

func (s *minioStore) DownloadFile(ctx context.Context, key, localPath string) (string, error) {
	if err := s.client.FGetObject(ctx, s.bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return "", classify("download", key, err)
	}
	return localPath, nil
}

func (s *minioStore) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return false, nil
	}
	return false, fmt.Errorf("minio stat %q: %w (%v)", key, domain.ErrStorageUnavailable, err)
}

func (s *minioStore) DeleteFile(ctx context.Context, key string) (bool, error) {
	// RemoveObject succeeds for absent keys, so check first to report whether
	// a deletion actually happened.
	exists, err := s.FileExists(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return false, classify("delete", key, err)
	}
	return true, nil
}

func (s *minioStore) PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	exists, err := s.FileExists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("minio presign %q: %w", key, domain.ErrObjectNotFound)
	}

	u, err := s.presign.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", classify("presign", key, err)
	}
	return u.String(), nil
}

func (s *minioStore) GenerateObjectName(ext string) string {
	return objectkey.New(ext)
}

// classify translates a minio error into the matching domain sentinel.
func classify(op, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return fmt.Errorf("minio %s %q: %w", op, key, domain.ErrObjectNotFound)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "QuotaExceeded", "EntityTooLarge":
		return fmt.Errorf("minio %s %q: %w (%s)", op, key, domain.ErrUploadRejected, resp.Code)
	}
	return fmt.Errorf("minio %s %q: %w (%v)", op, key, domain.ErrStorageUnavailable, err)
}
