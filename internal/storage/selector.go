// Package storage selects and holds the process-wide object storage backend.
package storage

import (
	"fmt"
	"log"
	"sync"

	"sartor/internal/config"
	"sartor/internal/port"
	miniostore "sartor/internal/storage/minio"
	s3store "sartor/internal/storage/s3"
)

var (
	once     sync.Once
	instance port.ObjectStorage
	initErr  error
)

// Active returns the single ObjectStorage instance for the process, building
// it on first call. Construction happens exactly once even under concurrent
// first access; every caller gets the same instance (or the same error).
func Active(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	once.Do(func() {
		instance, initErr = New(cfg)
		if initErr == nil {
			log.Printf("storage: using %s backend with bucket %q", cfg.Backend, cfg.Bucket)
		}
	})
	return instance, initErr
}

// New constructs a backend from configuration without touching the
// process-wide instance. Used by Active and by tests.
func New(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Backend {
	case "s3":
		return s3store.NewS3Store(cfg)
	case "minio":
		return miniostore.NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
