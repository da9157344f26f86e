// Package command is the write side: every mutation is stored first and then
// announced on the event stream.
package command

import (
	"context"
	"log"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/files"
	"github.com/Rehab-Center/Admin-Service/internal/finance"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// Store is the subset of the Postgres storage the write side needs.
type Store interface {
	SaveFileMetadata(ctx context.Context, f models.FileMetadata) error
	DeleteFileMetadata(ctx context.Context, fileID string) error
	UpdateFileScanStatus(ctx context.Context, fileID, status string, scannedAt time.Time) error

	CreateRecord(ctx context.Context, kind models.Kind, data models.Record) (models.Record, error)
	UpdateRecord(ctx context.Context, kind models.Kind, id string, data models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, kind models.Kind, id string) error

	GetMensualidad(ctx context.Context, id string) (models.Mensualidad, error)
	CreateMensualidad(ctx context.Context, m models.Mensualidad) (models.Mensualidad, error)
	SetMensualidadStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) (models.Mensualidad, error)
	MarkOverdue(ctx context.Context, year, month int) ([]string, error)
	DeleteMensualidadesForParticipant(ctx context.Context, participantID string) (int, error)
}

// Publisher sends an event. Failures are logged, never returned to callers
// whose write already succeeded.
type Publisher interface {
	Publish(subject string, payload any) error
}

type Service struct {
	store  Store
	events Publisher
	now    func() time.Time
}

func New(store Store, events Publisher) *Service {
	return &Service{store: store, events: events, now: time.Now}
}

func (s *Service) publish(subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		log.Printf("[NATS] publish %s failed: %v", subject, err)
	}
}

func (s *Service) SaveFile(ctx context.Context, f models.FileMetadata) error {
	if err := s.store.SaveFileMetadata(ctx, f); err != nil {
		return err
	}
	s.publish(models.SubjectFileUploaded, models.FileUploadedEvent{
		FileID:     f.ID,
		ObjectName: f.ObjectName,
		Category:   string(files.CategoryOf(f.Name)),
	})
	return nil
}

func (s *Service) DeleteFile(ctx context.Context, fileID string) error {
	if err := s.store.DeleteFileMetadata(ctx, fileID); err != nil {
		return err
	}
	s.publish(models.SubjectFileDeleted, models.FileDeletedEvent{FileID: fileID})
	return nil
}

func (s *Service) UpdateScanStatus(ctx context.Context, fileID, status string) error {
	if err := s.store.UpdateFileScanStatus(ctx, fileID, status, s.now()); err != nil {
		return err
	}
	s.publish(models.SubjectFileScanned, models.FileScannedEvent{FileID: fileID, Status: status})
	return nil
}

func (s *Service) CreateMensualidad(ctx context.Context, m models.Mensualidad) (models.Mensualidad, error) {
	if m.Estado == models.StatusPaid && m.FechaPago == nil {
		now := s.now()
		m.FechaPago = &now
	}
	created, err := s.store.CreateMensualidad(ctx, m)
	if err != nil {
		return models.Mensualidad{}, err
	}
	s.publish(models.SubjectMensualidadCreated, mensualidadEvent(created))
	return created, nil
}

// ToggleMensualidad flips the payment status with finance.ToggleStatus.
func (s *Service) ToggleMensualidad(ctx context.Context, id string) (models.Mensualidad, error) {
	current, err := s.store.GetMensualidad(ctx, id)
	if err != nil {
		return models.Mensualidad{}, err
	}
	next := finance.ToggleStatus(current.Estado)
	updated, err := s.store.SetMensualidadStatus(ctx, id, next, s.now())
	if err != nil {
		return models.Mensualidad{}, err
	}
	s.publish(models.SubjectMensualidadToggled, mensualidadEvent(updated))
	return updated, nil
}

// MarkOverdue moves pending mensualidades of past months to VENCIDA.
func (s *Service) MarkOverdue(ctx context.Context) ([]string, error) {
	now := s.now()
	ids, err := s.store.MarkOverdue(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		s.publish(models.SubjectMensualidadesOverdue, models.OverdueEvent{IDs: ids, RunAt: now})
	}
	return ids, nil
}

// DeleteParticipantMensualidades is the cleanup run when a participant goes away.
func (s *Service) DeleteParticipantMensualidades(ctx context.Context, participantID string) (int, error) {
	return s.store.DeleteMensualidadesForParticipant(ctx, participantID)
}

func mensualidadEvent(m models.Mensualidad) models.MensualidadEvent {
	return models.MensualidadEvent{ID: m.ID, ParticipantID: m.ParticipantID, Estado: m.Estado}
}
