package storage

import (
	"context"
	"fmt"
	"strings"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// RootFolder prefixes every uploaded asset.
const RootFolder = "pest-control"

var allowedBuckets = map[string]bool{
	"images":  true,
	"gallery": true,
}

// Folder maps an upload bucket to its destination folder.
func Folder(bucket string) (string, error) {
	if !allowedBuckets[bucket] {
		return "", utils.ValidationError("invalid bucket; allowed values are 'images' and 'gallery'")
	}
	return RootFolder + "/" + bucket, nil
}

// OwnedPublicID checks that publicID names an asset inside one of the upload
// folders, so deletes cannot reach other assets on the account.
func OwnedPublicID(publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return utils.ValidationError("publicId is required")
	}
	rest, rooted := strings.CutPrefix(publicID, RootFolder+"/")
	bucket, name, _ := strings.Cut(rest, "/")
	if !rooted || !allowedBuckets[bucket] || name == "" || strings.Contains(name, "..") {
		return utils.ValidationError("publicId must name an asset under " + RootFolder + "/images or " + RootFolder + "/gallery")
	}
	return nil
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld}, nil
}

// Upload sends the file to the bucket's folder and returns its secure URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, localFilePath, bucket string) (*models.UploadResult, error) {
	folder, err := Folder(bucket)
	if err != nil {
		return nil, err
	}

	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary returned no public ID")
	}

	utils.GetLogger().Info("media uploaded", zap.String("publicId", result.PublicID), zap.String("folder", folder))
	return &models.UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete destroys an uploaded asset. Unknown assets are NotFound.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if err := OwnedPublicID(publicID); err != nil {
		return err
	}
	publicID = strings.TrimSpace(publicID)

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete: %s", result.Error.Message)
	}
	if result.Result == "not found" {
		return utils.NotFoundError("asset not found")
	}

	utils.GetLogger().Info("media deleted", zap.String("publicId", publicID))
	return nil
}
