package objectkey_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sartor/internal/storage/objectkey"
)

var keyPattern = regexp.MustCompile(
	`^orders/\d{4}/\d{2}/\d{2}/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}(\.[a-z0-9]+)?$`)

func TestNew_KeyShape(t *testing.T) {
	key := objectkey.New(".jpg")
	assert.Regexp(t, keyPattern, key)
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	today := time.Now().UTC().Format("2006/01/02")
	assert.True(t, strings.HasPrefix(key, "orders/"+today+"/"))
}

func TestNew_EmptyExtension(t *testing.T) {
	key := objectkey.New("")
	assert.Regexp(t, keyPattern, key)
	assert.False(t, strings.Contains(key, "."))
}

func TestNew_UniquePerCall(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := objectkey.New(".png")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, ".jpg", objectkey.NormalizeExt("jpg"))
	assert.Equal(t, ".jpg", objectkey.NormalizeExt(".jpg"))
	assert.Equal(t, ".jpg", objectkey.NormalizeExt("JPG"))
	assert.Equal(t, "", objectkey.NormalizeExt(""))
	assert.Equal(t, "", objectkey.NormalizeExt("  "))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", objectkey.ContentType("orders/a/b.jpg"))
	assert.Equal(t, "image/jpeg", objectkey.ContentType("photo.JPEG"))
	assert.Equal(t, "image/png", objectkey.ContentType("x.png"))
	assert.Equal(t, "image/webp", objectkey.ContentType("x.webp"))
	assert.Equal(t, "application/octet-stream", objectkey.ContentType("x.bin"))
	assert.Equal(t, "application/octet-stream", objectkey.ContentType("noext"))
}
