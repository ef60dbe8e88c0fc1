package uploader

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/velstore/product-intake/config"
)

const defaultUploadTimeout = 30 * time.Second

// UploadError carries the underlying cause of a failed image upload.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "image upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }

type ImageUploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// MinioUploader pushes image buffers into a fixed folder of a MinIO bucket
// and returns the public URL of the stored object.
type MinioUploader struct {
	client   *minio.Client
	endpoint string
	bucket   string
	folder   string
	timeout  time.Duration
}

func NewMinioUploader(cfg config.Minio) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Minio client: %w", err)
	}

	timeout := time.Duration(cfg.UploadTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}

	return &MinioUploader{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		folder:   cfg.Folder,
		timeout:  timeout,
	}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	contentType := http.DetectContentType(data)
	key := u.objectKey(contentType)

	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return u.objectURL(key), nil
}

func (u *MinioUploader) objectKey(contentType string) string {
	return u.folder + "/" + uuid.NewString() + extensionFor(contentType)
}

func (u *MinioUploader) objectURL(key string) string {
	return fmt.Sprintf("https://%s/%s/%s", u.endpoint, u.bucket, key)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
