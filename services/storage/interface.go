package storage

import (
	"context"

	"pestcontrol/models"
)

// StorageService uploads and removes admin media on the asset host.
type StorageService interface {
	Upload(ctx context.Context, localFilePath, bucket string) (*models.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
