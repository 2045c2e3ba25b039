package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores public objects such as avatar images.
// Upload needs the exact body size: S3 and R2 reject streamed bodies without a Content-Length.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader, size int64) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
