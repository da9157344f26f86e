// Package record exposes CRUD for participants, guardians and sedes.
package record

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/Rehab-Center/Admin-Service/internal/services/infrastructure"
	"github.com/gin-gonic/gin"
)

type Reader interface {
	List(ctx context.Context, kind models.Kind) ([]models.Record, error)
	Record(ctx context.Context, kind models.Kind, id string) (models.Record, error)
}

type Writer interface {
	CreateRecord(ctx context.Context, kind models.Kind, data models.Record) (models.Record, error)
	UpdateRecord(ctx context.Context, kind models.Kind, id string, data models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, kind models.Kind, id string) error
}

type Validator interface {
	ValidateRecord(ctx context.Context, kind models.Kind, r models.Record, excludedID string) map[string]string
}

type Handler struct {
	reader    Reader
	writer    Writer
	validator Validator
}

func NewHandler(reader Reader, writer Writer, validator Validator) *Handler {
	return &Handler{reader: reader, writer: writer, validator: validator}
}

// Register mounts /{collection} for every record kind.
func (h *Handler) Register(api *gin.RouterGroup) {
	for _, kind := range models.Kinds() {
		g := api.Group("/" + kind.Collection())
		g.GET("", h.list(kind))
		g.POST("", h.create(kind))
		g.GET("/:id", h.get(kind))
		g.PUT("/:id", h.update(kind))
		g.DELETE("/:id", h.remove(kind))
	}
}

func (h *Handler) list(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.reader.List(c.Request.Context(), kind)
		if err != nil {
			log.Printf("[DB] list %s failed: %v", kind, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + kind.Collection()})
			return
		}
		c.JSON(http.StatusOK, models.ListResponse{Data: records})
	}
}

func (h *Handler) get(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := h.reader.Record(c.Request.Context(), kind, c.Param("id"))
		if !h.ok(c, kind, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": r})
	}
}

func (h *Handler) create(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body models.Record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		if errs := h.validator.ValidateRecord(c.Request.Context(), kind, body, ""); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
			return
		}

		r, err := h.writer.CreateRecord(c.Request.Context(), kind, body)
		if !h.ok(c, kind, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": r})
	}
}

func (h *Handler) update(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var body models.Record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		if errs := h.validator.ValidateRecord(c.Request.Context(), kind, body, id); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
			return
		}

		r, err := h.writer.UpdateRecord(c.Request.Context(), kind, id, body)
		if !h.ok(c, kind, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": r})
	}
}

func (h *Handler) remove(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !h.ok(c, kind, h.writer.DeleteRecord(c.Request.Context(), kind, id)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": kind.Label() + " eliminado", "id": id})
	}
}

func (h *Handler) ok(c *gin.Context, kind models.Kind, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, infrastructure.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": kind.Label() + " no encontrado"})
	default:
		log.Printf("[DB] %s %s failed: %v", c.Request.Method, kind, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
	return false
}
