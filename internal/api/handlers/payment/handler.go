// Package payment serves mensualidades and the finance selectors.
package payment

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/finance"
	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/Rehab-Center/Admin-Service/internal/services/infrastructure"
	"github.com/gin-gonic/gin"
)

type Reader interface {
	Mensualidades(ctx context.Context, filter models.MensualidadFilter) ([]models.Mensualidad, error)
	PaymentStats(ctx context.Context, filter models.MensualidadFilter) (models.PaymentStats, error)
}

type Writer interface {
	CreateMensualidad(ctx context.Context, m models.Mensualidad) (models.Mensualidad, error)
	ToggleMensualidad(ctx context.Context, id string) (models.Mensualidad, error)
}

// ParticipantChecker confirms the participant of a new mensualidad exists.
type ParticipantChecker interface {
	Existence(ctx context.Context, kind models.Kind, id string) models.ValidationResult
}

type Handler struct {
	reader  Reader
	writer  Writer
	checker ParticipantChecker
	now     func() time.Time
}

func NewHandler(reader Reader, writer Writer, checker ParticipantChecker) *Handler {
	return &Handler{reader: reader, writer: writer, checker: checker, now: time.Now}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/mensualidades", h.List)
	api.POST("/mensualidades", h.Create)
	api.PATCH("/mensualidades/:id/toggle", h.Toggle)

	fin := api.Group("/finance")
	fin.GET("/stats", h.Stats)
	fin.GET("/years", h.Years)
	fin.GET("/months", h.Months)
	fin.GET("/statuses", h.Statuses)
}

// view decorates a mensualidad with its display labels.
type view struct {
	models.Mensualidad
	MesLabel    string        `json:"mesLabel"`
	EstadoLabel string        `json:"estadoLabel"`
	EstadoStyle finance.Style `json:"estadoStyle"`
	ValorLabel  string        `json:"valorLabel"`
}

func newView(m models.Mensualidad) view {
	return view{
		Mensualidad: m,
		MesLabel:    finance.MonthLabel(m.Mes),
		EstadoLabel: finance.StatusLabel(m.Estado),
		EstadoStyle: finance.StatusStyle(m.Estado),
		ValorLabel:  finance.FormatCurrency(&m.Valor),
	}
}

func filterFromQuery(c *gin.Context) (models.MensualidadFilter, bool) {
	filter := models.MensualidadFilter{ParticipantID: c.Query("participant_id")}
	var err error
	raw := c.Query("año")
	if raw == "" {
		raw = c.Query("anio")
	}
	if raw != "" {
		if filter.Anio, err = strconv.Atoi(raw); err != nil {
			return filter, false
		}
	}
	if raw := c.Query("mes"); raw != "" {
		if filter.Mes, err = strconv.Atoi(raw); err != nil {
			return filter, false
		}
	}
	if raw := c.Query("estado"); raw != "" {
		status, ok := finance.ParseStatus(raw)
		if !ok {
			return filter, false
		}
		filter.Estado = status
	}
	return filter, true
}

func (h *Handler) List(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	list, err := h.reader.Mensualidades(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[DB] list mensualidades failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mensualidades"})
		return
	}
	views := make([]view, len(list))
	for i, m := range list {
		views[i] = newView(m)
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *Handler) Create(c *gin.Context) {
	var form models.MensualidadForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	errs := finance.ValidateMensualidadData(form)
	if _, failed := errs["participant_id"]; !failed {
		if res := h.checker.Existence(c.Request.Context(), models.KindParticipant, form.ParticipantID); !res.IsValid {
			errs["participant_id"] = res.Message()
		}
	}
	if !errs.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	created, err := h.writer.CreateMensualidad(c.Request.Context(), finance.ToMensualidad(form))
	if err != nil {
		log.Printf("[DB] create mensualidad failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mensualidad"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": newView(created)})
}

func (h *Handler) Toggle(c *gin.Context) {
	m, err := h.writer.ToggleMensualidad(c.Request.Context(), c.Param("id"))
	if errors.Is(err, infrastructure.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "mensualidad no encontrada"})
		return
	}
	if err != nil {
		log.Printf("[DB] toggle mensualidad failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mensualidad"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newView(m)})
}

func (h *Handler) Stats(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	stats, err := h.reader.PaymentStats(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[DB] payment stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
		"labels": gin.H{
			"totalAmount":   finance.FormatCurrency(&stats.TotalAmount),
			"paidAmount":    finance.FormatCurrency(&stats.PaidAmount),
			"pendingAmount": finance.FormatCurrency(&stats.PendingAmount),
			"overdueAmount": finance.FormatCurrency(&stats.OverdueAmount),
		},
	})
}

// Years defaults to MinYear through next year.
func (h *Handler) Years(c *gin.Context) {
	start := finance.MinYear
	count := h.now().Year() + 1 - start + 1
	if raw := c.Query("start"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
			return
		}
		start = v
	}
	if raw := c.Query("count"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
			return
		}
		count = v
	}
	c.JSON(http.StatusOK, gin.H{"data": finance.GenerateYears(start, count)})
}

func (h *Handler) Months(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": finance.Months()})
}

func (h *Handler) Statuses(c *gin.Context) {
	statuses := []models.PaymentStatus{models.StatusPaid, models.StatusPending, models.StatusOverdue}
	out := make([]gin.H, len(statuses))
	for i, s := range statuses {
		out[i] = gin.H{"value": s, "label": finance.StatusLabel(s), "style": finance.StatusStyle(s)}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
