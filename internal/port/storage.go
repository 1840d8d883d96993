package port

import (
	"context"
	"time"
)

// ObjectStorage is the capability set shared by both storage backend variants
// (MinIO local proxy and AWS S3). Implementations own their bucket bootstrap
// and translate SDK errors into the domain storage sentinels, so callers stay
// independent of which variant is active.
type ObjectStorage interface {
	// UploadFile streams a local file to the backend. An empty objectKey asks
	// the backend to generate one. Returns the key the object was stored under.
	UploadFile(ctx context.Context, localPath, objectKey string) (string, error)

	// DownloadFile fetches an object to localPath and returns localPath.
	DownloadFile(ctx context.Context, objectKey, localPath string) (string, error)

	// FileExists reports whether the object is present. A missing object is
	// (false, nil); an error means the backend could not be consulted.
	FileExists(ctx context.Context, objectKey string) (bool, error)

	// DeleteFile removes the object. Deleting an absent key is not an error;
	// the bool reports whether a deletion actually occurred.
	DeleteFile(ctx context.Context, objectKey string) (bool, error)

	// PresignedDownloadURL mints a time-limited download URL for an existing
	// object. Returns domain.ErrObjectNotFound when the key has no object.
	PresignedDownloadURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)

	// GenerateObjectName derives a fresh collision-resistant, date-partitioned
	// object key for the given file extension.
	GenerateObjectName(ext string) string
}
