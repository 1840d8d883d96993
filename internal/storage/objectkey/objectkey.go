// Package objectkey derives object keys for the order image store. Keys are
// partitioned by upload date so operators can scan a day's uploads directly in
// the bucket, and carry a v4 UUID so concurrent uploads cannot collide.
package objectkey

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const prefix = "orders"

// New returns a fresh object key of the form orders/YYYY/MM/DD/<uuid><ext>.
// The date partition uses UTC. ext may be empty; a bare extension like "jpg"
// is normalized to ".jpg".
func New(ext string) string {
	datePath := time.Now().UTC().Format("2006/01/02")
	return path.Join(prefix, datePath, uuid.New().String()+NormalizeExt(ext))
}

// NormalizeExt lowercases an extension and ensures a single leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	return "." + strings.TrimLeft(ext, ".")
}

// ContentType maps a file extension to the MIME type the backends attach to
// uploaded objects. Unknown extensions fall back to a generic binary type.
func ContentType(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
