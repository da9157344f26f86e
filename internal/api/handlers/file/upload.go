package file

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/files"
	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadResult is the per-file result object returned to the client.
type UploadResult struct {
	Success bool                 `json:"success"`
	File    *models.FileMetadata `json:"file,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Upload accepts one or many files under "files" or "file".
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse multipart form: " + err.Error()})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	for _, fh := range headers {
		if fh.Size > MaxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large: " + fh.Filename})
			return
		}
	}

	description := c.PostForm("description")
	userID := userIDFromContext(c)
	results := make([]UploadResult, 0, len(headers))
	for _, fh := range headers {
		meta, err := h.processSingleFile(c.Request.Context(), fh, description, userID)
		if err != nil {
			log.Printf("[UPLOAD] %s: %v", fh.Filename, err)
			results = append(results, UploadResult{Success: false, Error: err.Error()})
			continue
		}
		results = append(results, UploadResult{Success: true, File: &meta})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) processSingleFile(ctx context.Context, fh *multipart.FileHeader, description, userID string) (models.FileMetadata, error) {
	fileID := uuid.New().String()
	objectName := "files/" + fileID
	if ext := files.Extension(fh.Filename); ext != "" {
		objectName += "." + ext
	}
	contentType := files.ContentType(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := h.storage.UploadFile(ctx, src, fh.Size, objectName, contentType); err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to upload to storage: %w", err)
	}

	meta := models.FileMetadata{
		ID:          fileID,
		Name:        fh.Filename,
		ObjectName:  objectName,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Metadata:    &models.ObjectInfo{Size: fh.Size, ContentType: contentType},
		UploadedBy:  userID,
		ScanStatus:  "pending",
	}

	if err := h.writer.SaveFile(ctx, meta); err != nil {
		if delErr := h.storage.DeleteFile(ctx, objectName); delErr != nil {
			log.Printf("[UPLOAD] failed to clean up %s after metadata failure: %v", objectName, delErr)
		}
		return models.FileMetadata{}, fmt.Errorf("failed to save file metadata: %w", err)
	}

	if h.scanner != nil {
		go h.scanner.ScanFile(context.Background(), fileID, objectName)
	}
	return meta, nil
}
