package service

import (
	"context"
	"fmt"
	"time"
)

// stubFileStorage satisfies storage.FileStorage without network access.
type stubFileStorage struct{}

func (stubFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s", objectKey), nil
}

func (stubFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/download/%s", objectKey), nil
}

func (stubFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return nil
}
