// Package check exposes the form validators so the dashboard can check a
// field before submitting.
package check

import (
	"context"
	"net/http"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/Rehab-Center/Admin-Service/internal/validation"
	"github.com/gin-gonic/gin"
)

type Validator interface {
	DocumentUniqueness(ctx context.Context, kind models.Kind, number, excludedID string) models.ValidationResult
	Existence(ctx context.Context, kind models.Kind, id string) models.ValidationResult
	Relational(ctx context.Context, participantID, guardianID string) models.ValidationResult
	PastDate(value, label string) models.ValidationResult
}

type Handler struct {
	validator Validator
}

func NewHandler(v Validator) *Handler {
	return &Handler{validator: v}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	g := api.Group("/validate")
	g.POST("/document", h.Document)
	g.POST("/existence", h.Existence)
	g.POST("/relation", h.Relation)
	g.POST("/email", h.Email)
	g.POST("/date", h.Date)
}

func parseKind(c *gin.Context, raw string, allowed ...models.Kind) (models.Kind, bool) {
	kind, ok := models.ParseKind(raw)
	if ok {
		for _, k := range allowed {
			if k == kind {
				return kind, true
			}
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind: " + raw})
	return 0, false
}

type documentRequest struct {
	Kind       string `json:"kind"`
	Number     string `json:"number"`
	ExcludedID string `json:"excluded_id"`
}

func (h *Handler) Document(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	kind, ok := parseKind(c, req.Kind, models.KindParticipant, models.KindGuardian)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.validator.DocumentUniqueness(c.Request.Context(), kind, req.Number, req.ExcludedID))
}

type existenceRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (h *Handler) Existence(c *gin.Context) {
	var req existenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	kind, ok := parseKind(c, req.Kind, models.Kinds()...)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.validator.Existence(c.Request.Context(), kind, req.ID))
}

type relationRequest struct {
	ParticipantID string `json:"participant_id"`
	GuardianID    string `json:"guardian_id"`
}

func (h *Handler) Relation(c *gin.Context) {
	var req relationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	c.JSON(http.StatusOK, h.validator.Relational(c.Request.Context(), req.ParticipantID, req.GuardianID))
}

type valueRequest struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (h *Handler) Email(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	c.JSON(http.StatusOK, validation.Email(req.Value))
}

// Date validates a past date. label defaults to "fecha de nacimiento".
func (h *Handler) Date(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	label := req.Label
	if label == "" {
		label = validation.LabelBirthDate
	}
	c.JSON(http.StatusOK, h.validator.PastDate(req.Value, label))
}
