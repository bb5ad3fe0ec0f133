package port

import (
	"context"
	"io"
)

// UploadInput describes one bill slip image to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where the stored object landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage is the bucket holding photographed bill slips. Presigned
// URLs back the WhatsApp share links, so they must be fetchable without
// credentials until expiry.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
