// Package export serves preset CSV and XLSX downloads.
package export

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/export"
	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/gin-gonic/gin"
)

type Reader interface {
	ExportRecords(ctx context.Context, preset string) ([]models.Record, bool, error)
}

// Archive keeps a copy of generated exports in object storage.
type Archive interface {
	PutBytes(ctx context.Context, objectName string, data []byte, contentType string) error
}

type Announcer interface {
	AnnounceExport(ev models.ExportEvent)
}

type Handler struct {
	reader    Reader
	archive   Archive
	announcer Announcer
	now       func() time.Time
}

func NewHandler(reader Reader, archive Archive, announcer Announcer) *Handler {
	return &Handler{reader: reader, archive: archive, announcer: announcer, now: time.Now}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/export", h.Presets)
	api.GET("/export/:preset", h.Download)
}

func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": export.PresetNames()})
}

func render(format string, records []models.Record, headers []export.Header) ([]byte, string, error) {
	switch format {
	case "", "csv":
		return export.WithBOM(export.ToDelimitedText(records, headers)), export.ContentTypeCSV, nil
	case "xlsx":
		data, err := export.ToWorkbook(records, headers)
		return data, export.ContentTypeXLSX, err
	}
	return nil, "", fmt.Errorf("unsupported format %q", format)
}

// Download renders a preset. ?format=csv|xlsx, ?archive=true also stores the
// file under exports/ and announces it.
func (h *Handler) Download(c *gin.Context) {
	preset := c.Param("preset")
	headers, ok := export.Preset(preset)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown export preset"})
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	records, found, err := h.reader.ExportRecords(c.Request.Context(), preset)
	if err != nil {
		log.Printf("[EXPORT] failed to load %s: %v", preset, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown export preset"})
		return
	}

	data, contentType, err := render(format, records, headers)
	if err != nil {
		log.Printf("[EXPORT] failed to render %s as %s: %v", preset, format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
		return
	}

	filename := export.Filename(preset, format, h.now())
	if archive, _ := strconv.ParseBool(c.Query("archive")); archive && h.archive != nil {
		objectName := "exports/" + filename
		if err := h.archive.PutBytes(c.Request.Context(), objectName, data, contentType); err != nil {
			log.Printf("[EXPORT] failed to archive %s: %v", objectName, err)
		} else if h.announcer != nil {
			h.announcer.AnnounceExport(models.ExportEvent{
				Preset:     preset,
				Format:     format,
				ObjectName: objectName,
				Rows:       len(records),
			})
		}
	}

	if err := export.WriteDownload(c.Writer, data, filename, contentType); err != nil {
		log.Printf("[EXPORT] failed to write %s: %v", filename, err)
	}
}
