package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

type PostgresStorage struct {
	Db *sql.DB
}

// NewPostgresStorage connects and prepares the schema.
func NewPostgresStorage(connectionString string) (*PostgresStorage, error) {
	p := &PostgresStorage{}
	if err := p.Connect(connectionString); err != nil {
		return nil, err
	}
	return p, nil
}

// Connect establishes connection to PostgreSQL
func (p *PostgresStorage) Connect(connectionString string) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p.Db = db

	if err := p.createTables(ctx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[DB] connected to PostgreSQL")
	return nil
}

// CheckConnection is used by the health endpoint.
func (p *PostgresStorage) CheckConnection(ctx context.Context) error {
	if p == nil || p.Db == nil {
		return fmt.Errorf("postgres storage not initialized")
	}
	return p.Db.PingContext(ctx)
}

func (p *PostgresStorage) Close() error {
	if p == nil || p.Db == nil {
		return nil
	}
	return p.Db.Close()
}

func (p *PostgresStorage) createTables(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS files (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			object_name VARCHAR(500) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			size BIGINT NOT NULL DEFAULT 0,
			content_type VARCHAR(255) NOT NULL DEFAULT '',
			uploaded_by VARCHAR(255) NOT NULL DEFAULT '',
			scan_status VARCHAR(50) NOT NULL DEFAULT 'pending',
			scanned_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id UUID PRIMARY KEY,
			kind VARCHAR(32) NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS mensualidades (
			id UUID PRIMARY KEY,
			participant_id VARCHAR(64) NOT NULL,
			valor NUMERIC(14,2) NOT NULL,
			mes SMALLINT NOT NULL,
			anio SMALLINT NOT NULL,
			estado VARCHAR(16) NOT NULL DEFAULT 'PENDIENTE',
			fecha_pago TIMESTAMPTZ,
			observaciones TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_files_scan_status ON files(scan_status)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_records_documento ON records((data->>'numero_documento'))`,
		`CREATE INDEX IF NOT EXISTS idx_mensualidades_participant ON mensualidades(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mensualidades_periodo ON mensualidades(anio, mes)`,
	}

	for _, stmt := range schema {
		if _, err := p.Db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("[DB] error closing rows: %v", err)
	}
}
