package file

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Delete(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.storage.DeleteFile(c.Request.Context(), f.ObjectName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file from storage: " + err.Error()})
		return
	}

	if err := h.writer.DeleteFile(c.Request.Context(), f.ID); err != nil {
		log.Printf("[DB] failed to delete metadata of %s: %v", f.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file metadata"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
		"file_id": f.ID,
	})
}
