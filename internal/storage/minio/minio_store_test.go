package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sartor/internal/config"
)

func TestNewMinioStore_PresignsAgainstPublicEndpoint(t *testing.T) {
	cfg := &config.StorageConfig{
		Backend:        "minio",
		Endpoint:       "127.0.0.1:9000",
		PublicEndpoint: "files.sartor.local:9000",
		Bucket:         "test-bucket",
		AccessKey:      "test-access",
		SecretKey:      "test-secret",
	}

	store, err := NewMinioStore(cfg)
	assert.NoError(t, err)

	s := store.(*minioStore)
	// Data path stays on the internal host; URLs are signed for the host the
	// browser will hit, so the Host header in the signature verifies.
	assert.Equal(t, "127.0.0.1:9000", s.client.EndpointURL().Host)
	assert.Equal(t, "files.sartor.local:9000", s.presign.EndpointURL().Host)
}

func TestNewMinioStore_NoPublicEndpoint_SharesClient(t *testing.T) {
	cfg := &config.StorageConfig{
		Backend:   "minio",
		Endpoint:  "127.0.0.1:9000",
		Bucket:    "test-bucket",
		AccessKey: "test-access",
		SecretKey: "test-secret",
	}

	store, err := NewMinioStore(cfg)
	assert.NoError(t, err)

	s := store.(*minioStore)
	assert.Same(t, s.client, s.presign)
}
