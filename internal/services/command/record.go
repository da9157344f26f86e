package command

import (
	"context"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

func (s *Service) CreateRecord(ctx context.Context, kind models.Kind, data models.Record) (models.Record, error) {
	r, err := s.store.CreateRecord(ctx, kind, data)
	if err != nil {
		return nil, err
	}
	s.publish(models.RecordSubject(kind, "created"), models.RecordEvent{ID: r.ID(), Kind: kind.Collection()})
	return r, nil
}

func (s *Service) UpdateRecord(ctx context.Context, kind models.Kind, id string, data models.Record) (models.Record, error) {
	r, err := s.store.UpdateRecord(ctx, kind, id, data)
	if err != nil {
		return nil, err
	}
	s.publish(models.RecordSubject(kind, "updated"), models.RecordEvent{ID: id, Kind: kind.Collection()})
	return r, nil
}

// DeleteRecord removes a record. Dependent rows are cleaned up by the
// consumer of the deleted event.
func (s *Service) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	if err := s.store.DeleteRecord(ctx, kind, id); err != nil {
		return err
	}
	s.publish(models.RecordSubject(kind, "deleted"), models.RecordEvent{ID: id, Kind: kind.Collection()})
	return nil
}

// AnnounceExport publishes that an archived export is available.
func (s *Service) AnnounceExport(ev models.ExportEvent) {
	s.publish(models.SubjectExportGenerated, ev)
}
