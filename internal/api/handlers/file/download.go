package file

import (
	"log"
	"net/http"

	"github.com/Rehab-Center/Admin-Service/internal/services"
	"github.com/gin-gonic/gin"
)

// Download redirects to a presigned storage URL. Infected files are refused.
func (h *Handler) Download(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}
	if f.ScanStatus == services.ScanInfected {
		c.JSON(http.StatusGone, gin.H{"error": "File was removed by the virus scanner"})
		return
	}

	u, err := h.storage.PresignedURL(c.Request.Context(), f.ObjectName, f.Name)
	if err != nil {
		log.Printf("[MinIO] presign failed for %s: %v", f.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create download link"})
		return
	}
	c.Redirect(http.StatusFound, u)
}
