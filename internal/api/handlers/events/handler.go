// Package events consumes the admin-events stream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/nats-io/nats.go"
)

// ErrMissingID rejects events without the id they refer to.
var ErrMissingID = errors.New("missing id")

type MensualidadCleaner interface {
	DeleteParticipantMensualidades(ctx context.Context, participantID string) (int, error)
}

type Handler struct {
	cleaner MensualidadCleaner
	timeout time.Duration
}

func NewHandler(cleaner MensualidadCleaner) *Handler {
	return &Handler{cleaner: cleaner, timeout: 30 * time.Second}
}

// Route binds a subject to a durable consumer.
type Route struct {
	Subject string
	Durable string
	Handler nats.MsgHandler
}

func (h *Handler) Routes() []Route {
	return []Route{
		{models.RecordSubject(models.KindParticipant, "deleted"), "admin-participant-cleanup", h.wrap("participants.deleted", h.ParticipantDeleted)},
		{models.SubjectFileUploaded, "admin-file-audit", h.wrap(models.SubjectFileUploaded, h.FileUploaded)},
		{models.SubjectMensualidadesOverdue, "admin-overdue-audit", h.wrap(models.SubjectMensualidadesOverdue, h.Overdue)},
	}
}

// Subscribe registers every route through subscribe, which is normally
// services.SubscribeEvent.
func (h *Handler) Subscribe(subscribe func(subject, durable string, handler nats.MsgHandler) (*nats.Subscription, error)) ([]*nats.Subscription, error) {
	var subs []*nats.Subscription
	for _, r := range h.Routes() {
		sub, err := subscribe(r.Subject, r.Durable, r.Handler)
		if err != nil {
			return subs, fmt.Errorf("failed to subscribe to %s: %w", r.Subject, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (h *Handler) wrap(subject string, fn func(ctx context.Context, data []byte) error) nats.MsgHandler {
	return func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		if err := fn(ctx, msg.Data); err != nil {
			log.Printf("[NATS] %s: %v", subject, err)
			nak(msg)
			return
		}
		ack(msg)
	}
}

// ParticipantDeleted drops the payment history of a removed participant.
func (h *Handler) ParticipantDeleted(ctx context.Context, data []byte) error {
	var payload models.RecordEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if payload.ID == "" {
		return ErrMissingID
	}

	log.Printf("[NATS] Processing participants.deleted for id: %s", payload.ID)
	n, err := h.cleaner.DeleteParticipantMensualidades(ctx, payload.ID)
	if err != nil {
		return fmt.Errorf("failed to delete mensualidades: %w", err)
	}
	log.Printf("[NATS] Deleted %d mensualidades for participant %s", n, payload.ID)
	return nil
}

func (h *Handler) FileUploaded(_ context.Context, data []byte) error {
	var payload models.FileUploadedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.FileID == "" {
		return ErrMissingID
	}
	log.Printf("[NATS] File uploaded: %s (%s)", payload.FileID, payload.Category)
	return nil
}

func (h *Handler) Overdue(_ context.Context, data []byte) error {
	var payload models.OverdueEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	log.Printf("[NATS] %d mensualidades marked overdue at %s", len(payload.IDs), payload.RunAt.Format(time.RFC3339))
	return nil
}

func ack(msg *nats.Msg) {
	if err := msg.Ack(); err != nil {
		log.Printf("[NATS] Failed to ack message: %v", err)
	}
}

func nak(msg *nats.Msg) {
	if err := msg.Nak(); err != nil {
		log.Printf("[NATS] Failed to nak message: %v", err)
	}
}
