package domain

import (
	"context"
	"time"
)

// FileRepository defines the interface for file storage operations
type FileRepository interface {
	// Upload stores the object under key
	Upload(ctx context.Context, file []byte, key string, contentType string) error
	// PresignedURL returns a time-limited download URL for key
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
