package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

const fileColumns = `id, name, object_name, description, size, content_type, uploaded_by, scan_status, scanned_at, created_at`

func (p *PostgresStorage) SaveFileMetadata(ctx context.Context, f models.FileMetadata) error {
	query := `
	INSERT INTO files (id, name, object_name, description, size, content_type, uploaded_by, scan_status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		object_name = EXCLUDED.object_name,
		description = EXCLUDED.description,
		size = EXCLUDED.size,
		content_type = EXCLUDED.content_type,
		scan_status = EXCLUDED.scan_status,
		updated_at = NOW()
	`

	var size int64
	var contentType string
	if f.Metadata != nil {
		size, contentType = f.Metadata.Size, f.Metadata.ContentType
	}
	status := f.ScanStatus
	if status == "" {
		status = "pending"
	}

	_, err := p.Db.ExecContext(ctx, query,
		f.ID, f.Name, f.ObjectName, f.Description, size, contentType, f.UploadedBy, status, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save file %s: %w", f.ID, err)
	}
	return nil
}

func (p *PostgresStorage) GetFileMetadata(ctx context.Context, fileID string) (models.FileMetadata, error) {
	row := p.Db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, fileID)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FileMetadata{}, ErrNotFound
	}
	if err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return f, nil
}

// ListFiles returns every file, newest first. Filtering and ordering for
// display happen in the files package.
func (p *PostgresStorage) ListFiles(ctx context.Context) ([]models.FileMetadata, error) {
	rows, err := p.Db.QueryContext(ctx, `SELECT `+fileColumns+` FROM files ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer closeRows(rows)

	files := []models.FileMetadata{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (p *PostgresStorage) DeleteFileMetadata(ctx context.Context, fileID string) error {
	res, err := p.Db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) UpdateFileScanStatus(ctx context.Context, fileID, status string, scannedAt time.Time) error {
	query := `
	UPDATE files
	SET scan_status = $1,
		scanned_at = $2,
		updated_at = NOW()
	WHERE id = $3
	`
	_, err := p.Db.ExecContext(ctx, query, status, scannedAt, fileID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (models.FileMetadata, error) {
	var f models.FileMetadata
	var info models.ObjectInfo
	var scannedAt sql.NullTime
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.ObjectName,
		&f.Description,
		&info.Size,
		&info.ContentType,
		&f.UploadedBy,
		&f.ScanStatus,
		&scannedAt,
		&f.CreatedAt,
	)
	if err != nil {
		return models.FileMetadata{}, err
	}
	f.Metadata = &info
	if scannedAt.Valid {
		t := scannedAt.Time
		f.ScannedAt = &t
	}
	return f, nil
}
