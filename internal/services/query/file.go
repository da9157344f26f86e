// Package query is the read side: listings and aggregates served to the
// dashboard.
package query

import (
	"context"

	"github.com/Rehab-Center/Admin-Service/internal/files"
	"github.com/Rehab-Center/Admin-Service/internal/finance"
	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// Store is the subset of the Postgres storage the read side needs.
type Store interface {
	ListFiles(ctx context.Context) ([]models.FileMetadata, error)
	GetFileMetadata(ctx context.Context, fileID string) (models.FileMetadata, error)
	ListRecords(ctx context.Context, kind models.Kind) ([]models.Record, error)
	GetRecord(ctx context.Context, kind models.Kind, id string) (models.Record, error)
	ListMensualidades(ctx context.Context, filter models.MensualidadFilter) ([]models.Mensualidad, error)
	GetMensualidad(ctx context.Context, id string) (models.Mensualidad, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// FileQuery carries the display options of the file list.
type FileQuery struct {
	Category string
	Term     string
	Fields   []files.SearchField
	SortBy   files.SortKey
	Order    files.SortOrder
}

// Files loads every file and applies category filter, search and sort, in
// that order.
func (s *Service) Files(ctx context.Context, q FileQuery) ([]models.FileMetadata, error) {
	list, err := s.store.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	category := q.Category
	if category == "" {
		category = files.AllCategories
	}
	list = files.FilterByCategory(list, category)
	list = files.Search(list, q.Term, q.Fields)
	if q.SortBy != "" {
		list = files.Sort(list, q.SortBy, q.Order)
	}
	return list, nil
}

func (s *Service) File(ctx context.Context, id string) (models.FileMetadata, error) {
	return s.store.GetFileMetadata(ctx, id)
}

func (s *Service) FileStats(ctx context.Context) (models.FileStats, error) {
	list, err := s.store.ListFiles(ctx)
	if err != nil {
		return models.FileStats{}, err
	}
	return files.ComputeStats(list), nil
}

// List satisfies validation.RecordSource with a fresh read on every call.
func (s *Service) List(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	return s.store.ListRecords(ctx, kind)
}

func (s *Service) Record(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	return s.store.GetRecord(ctx, kind, id)
}

func (s *Service) Mensualidades(ctx context.Context, filter models.MensualidadFilter) ([]models.Mensualidad, error) {
	return s.store.ListMensualidades(ctx, filter)
}

func (s *Service) Mensualidad(ctx context.Context, id string) (models.Mensualidad, error) {
	return s.store.GetMensualidad(ctx, id)
}

func (s *Service) PaymentStats(ctx context.Context, filter models.MensualidadFilter) (models.PaymentStats, error) {
	list, err := s.store.ListMensualidades(ctx, filter)
	if err != nil {
		return models.PaymentStats{}, err
	}
	return finance.CalculatePaymentStats(list), nil
}

// ExportRecords returns the rows behind an export preset. Mensualidades are
// flattened; everything else is read as stored.
func (s *Service) ExportRecords(ctx context.Context, preset string) ([]models.Record, bool, error) {
	if preset == "mensualidades" {
		list, err := s.store.ListMensualidades(ctx, models.MensualidadFilter{})
		if err != nil {
			return nil, true, err
		}
		records := make([]models.Record, len(list))
		for i, m := range list {
			records[i] = finance.ToRecord(m)
		}
		return records, true, nil
	}
	kind, ok := models.ParseKind(preset)
	if !ok {
		return nil, false, nil
	}
	records, err := s.store.ListRecords(ctx, kind)
	return records, true, err
}
