// Package file serves the "file formats" area: uploads, listing with
// search/filter/sort, stats and downloads.
package file

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/Rehab-Center/Admin-Service/internal/services/infrastructure"
	"github.com/Rehab-Center/Admin-Service/internal/services/query"
	"github.com/gin-gonic/gin"
)

// MaxUploadSize is the per-file limit.
const MaxUploadSize = 200 << 20

type Storage interface {
	UploadFile(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) error
	DeleteFile(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName, filename string) (string, error)
}

type Reader interface {
	Files(ctx context.Context, q query.FileQuery) ([]models.FileMetadata, error)
	File(ctx context.Context, id string) (models.FileMetadata, error)
	FileStats(ctx context.Context) (models.FileStats, error)
}

type Writer interface {
	SaveFile(ctx context.Context, f models.FileMetadata) error
	DeleteFile(ctx context.Context, fileID string) error
}

type Scanner interface {
	ScanFile(ctx context.Context, fileID, objectName string) string
}

type Handler struct {
	storage Storage
	reader  Reader
	writer  Writer
	scanner Scanner
}

// NewHandler wires the file endpoints. scanner may be nil to skip virus
// scanning.
func NewHandler(storage Storage, reader Reader, writer Writer, scanner Scanner) *Handler {
	return &Handler{storage: storage, reader: reader, writer: writer, scanner: scanner}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/upload", h.Upload)
	api.GET("/files", h.List)
	api.GET("/files/stats", h.Stats)
	api.GET("/files/types", h.Types)
	api.GET("/files/:id", h.Get)
	api.GET("/files/:id/download", h.Download)
	api.DELETE("/files/:id", h.Delete)
}

func userIDFromContext(c *gin.Context) string {
	id, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	s, _ := id.(string)
	return s
}

func (h *Handler) lookup(c *gin.Context) (models.FileMetadata, bool) {
	f, err := h.reader.File(c.Request.Context(), c.Param("id"))
	if errors.Is(err, infrastructure.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return models.FileMetadata{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return models.FileMetadata{}, false
	}
	return f, true
}
