package file

import (
	"net/http"
	"strings"

	"github.com/Rehab-Center/Admin-Service/internal/files"
	"github.com/Rehab-Center/Admin-Service/internal/services/query"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// List supports ?category=, ?search= with ?fields=name,extension,category,
// and ?sort=name|size|date|type with ?order=asc|desc.
func (h *Handler) List(c *gin.Context) {
	q := query.FileQuery{
		Category: c.DefaultQuery("category", files.AllCategories),
		Term:     c.Query("search"),
		Fields:   files.ParseSearchFields(c.Query("fields")),
		SortBy:   files.SortKey(strings.ToLower(c.Query("sort"))),
		Order:    files.SortOrder(strings.ToLower(c.DefaultQuery("order", string(files.Asc)))),
	}
	switch q.SortBy {
	case "", files.SortByName, files.SortBySize, files.SortByDate, files.SortByType:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort key: " + string(q.SortBy)})
		return
	}
	if q.Order != files.Asc && q.Order != files.Desc {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort order: " + string(q.Order)})
		return
	}

	list, err := h.reader.Files(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": list,
		"total": len(list),
	})
}

func (h *Handler) Get(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file": f,
		"type": files.Classify(f.Name),
	})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.reader.FileStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch file stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"totalSizeHuman": humanize.Bytes(uint64(stats.TotalSize)),
	})
}

// Types returns the extension table and category list used by the
// dashboard legend and filter.
func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": files.Categories,
		"extensions": files.KnownExtensions(),
		"default":    files.DefaultDescriptor,
	})
}
