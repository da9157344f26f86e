package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/google/uuid"
)

// Participants, guardians and sedes share one table; their fields live in a
// JSONB document and "id" is injected on read.

func (p *PostgresStorage) ListRecords(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	rows, err := p.Db.QueryContext(ctx,
		`SELECT id, data, created_at, updated_at FROM records WHERE kind = $1 ORDER BY created_at`, kind.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer closeRows(rows)

	records := []models.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgresStorage) GetRecord(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := p.Db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM records WHERE kind = $1 AND id = $2`, kind.Collection(), id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", kind, id, err)
	}
	return r, nil
}

// CreateRecord stores data under a new id and returns the stored record.
func (p *PostgresStorage) CreateRecord(ctx context.Context, kind models.Kind, data models.Record) (models.Record, error) {
	id := uuid.New().String()
	payload, err := encodeRecord(data)
	if err != nil {
		return nil, err
	}

	row := p.Db.QueryRowContext(ctx, `
	INSERT INTO records (id, kind, data) VALUES ($1, $2, $3)
	RETURNING id, data, created_at, updated_at
	`, id, kind.Collection(), payload)
	r, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return r, nil
}

// UpdateRecord replaces the document of an existing record.
func (p *PostgresStorage) UpdateRecord(ctx context.Context, kind models.Kind, id string, data models.Record) (models.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	payload, err := encodeRecord(data)
	if err != nil {
		return nil, err
	}

	row := p.Db.QueryRowContext(ctx, `
	UPDATE records SET data = $1, updated_at = NOW()
	WHERE kind = $2 AND id = $3
	RETURNING id, data, created_at, updated_at
	`, payload, kind.Collection(), id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", kind, id, err)
	}
	return r, nil
}

func (p *PostgresStorage) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := p.Db.ExecContext(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, kind.Collection(), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeRecord(data models.Record) ([]byte, error) {
	clean := make(models.Record, len(data))
	for k, v := range data {
		switch k {
		case "id", "_id", "created_at", "updated_at":
			continue
		}
		clean[k] = v
	}
	payload, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return payload, nil
}

func scanRecord(row rowScanner) (models.Record, error) {
	var id string
	var raw []byte
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	r := models.Record{}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("corrupt record %s: %w", id, err)
	}
	r["id"] = id
	r["created_at"] = createdAt.Format(time.RFC3339)
	r["updated_at"] = updatedAt.Format(time.RFC3339)
	return r, nil
}
