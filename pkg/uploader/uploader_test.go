package uploader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velstore/product-intake/config"
)

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"application/octet-stream", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionFor(tt.contentType), tt.contentType)
	}
}

func TestObjectKeyUsesFolderNamespace(t *testing.T) {
	u := &MinioUploader{folder: "submissions"}

	key := u.objectKey("image/png")
	assert.True(t, strings.HasPrefix(key, "submissions/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	// keys are unique per upload
	assert.NotEqual(t, key, u.objectKey("image/png"))
}

func TestObjectURL(t *testing.T) {
	u := &MinioUploader{endpoint: "media.example.com", bucket: "product-submissions"}
	url := u.objectURL("submissions/abc.png")
	assert.Equal(t, "https://media.example.com/product-submissions/submissions/abc.png", url)
}

func TestNewMinioUploaderDefaultsTimeout(t *testing.T) {
	u, err := NewMinioUploader(config.Minio{
		Endpoint: "media.example.com",
		Bucket:   "product-submissions",
		Folder:   "submissions",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultUploadTimeout, u.timeout)
}
