package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"pestcontrol/services/storage"
	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StorageHandler accepts admin media uploads and deletes.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// UploadFileHandler handles POST /api/admin/uploads/:bucket with a multipart "file".
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if _, err := storage.Folder(bucket); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, utils.ValidationError("file not provided"))
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		respondError(c, fmt.Errorf("failed to save file: %w", err))
		return
	}
	defer os.Remove(tempFilePath)

	result, err := h.StorageSvc.Upload(c.Request.Context(), tempFilePath, bucket)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, result)
}

// DeleteFileHandler handles DELETE /api/admin/uploads?publicId=...
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if err := storage.OwnedPublicID(publicID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.StorageSvc.Delete(c.Request.Context(), publicID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "file deleted")
}
