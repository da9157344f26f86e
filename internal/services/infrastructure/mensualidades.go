package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/google/uuid"
)

const mensualidadColumns = `id, participant_id, valor, mes, anio, estado, fecha_pago, observaciones, created_at, updated_at`

func (p *PostgresStorage) ListMensualidades(ctx context.Context, filter models.MensualidadFilter) ([]models.Mensualidad, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.ParticipantID != "" {
		add("participant_id = $%d", filter.ParticipantID)
	}
	if filter.Anio != 0 {
		add("anio = $%d", filter.Anio)
	}
	if filter.Mes != 0 {
		add("mes = $%d", filter.Mes)
	}
	if filter.Estado != "" {
		add("estado = $%d", string(filter.Estado))
	}

	query := `SELECT ` + mensualidadColumns + ` FROM mensualidades`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY anio DESC, mes DESC, created_at DESC"

	rows, err := p.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mensualidades: %w", err)
	}
	defer closeRows(rows)
	return collectMensualidades(rows)
}

func (p *PostgresStorage) GetMensualidad(ctx context.Context, id string) (models.Mensualidad, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Mensualidad{}, ErrNotFound
	}
	row := p.Db.QueryRowContext(ctx, `SELECT `+mensualidadColumns+` FROM mensualidades WHERE id = $1`, id)
	m, err := scanMensualidad(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mensualidad{}, ErrNotFound
	}
	if err != nil {
		return models.Mensualidad{}, fmt.Errorf("failed to get mensualidad %s: %w", id, err)
	}
	return m, nil
}

func (p *PostgresStorage) CreateMensualidad(ctx context.Context, m models.Mensualidad) (models.Mensualidad, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	row := p.Db.QueryRowContext(ctx, `
	INSERT INTO mensualidades (id, participant_id, valor, mes, anio, estado, fecha_pago, observaciones)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING `+mensualidadColumns,
		m.ID, m.ParticipantID, m.Valor, m.Mes, m.Anio, string(m.Estado), m.FechaPago, m.Observaciones,
	)
	created, err := scanMensualidad(row)
	if err != nil {
		return models.Mensualidad{}, fmt.Errorf("failed to create mensualidad: %w", err)
	}
	return created, nil
}

// SetMensualidadStatus stores a new status. fecha_pago is stamped when the
// status becomes PAGADO and cleared otherwise.
func (p *PostgresStorage) SetMensualidadStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) (models.Mensualidad, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Mensualidad{}, ErrNotFound
	}
	var paidAt *time.Time
	if status == models.StatusPaid {
		paidAt = &at
	}
	row := p.Db.QueryRowContext(ctx, `
	UPDATE mensualidades SET estado = $1, fecha_pago = $2, updated_at = NOW()
	WHERE id = $3
	RETURNING `+mensualidadColumns, string(status), paidAt, id)
	m, err := scanMensualidad(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mensualidad{}, ErrNotFound
	}
	if err != nil {
		return models.Mensualidad{}, fmt.Errorf("failed to update mensualidad %s: %w", id, err)
	}
	return m, nil
}

// MarkOverdue moves pending mensualidades of periods before (year, month)
// to VENCIDA and returns their ids.
func (p *PostgresStorage) MarkOverdue(ctx context.Context, year, month int) ([]string, error) {
	rows, err := p.Db.QueryContext(ctx, `
	UPDATE mensualidades SET estado = $1, updated_at = NOW()
	WHERE estado = $2 AND (anio < $3 OR (anio = $3 AND mes < $4))
	RETURNING id
	`, string(models.StatusOverdue), string(models.StatusPending), year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue mensualidades: %w", err)
	}
	defer closeRows(rows)

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (p *PostgresStorage) DeleteMensualidadesForParticipant(ctx context.Context, participantID string) (int, error) {
	res, err := p.Db.ExecContext(ctx, `DELETE FROM mensualidades WHERE participant_id = $1`, participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mensualidades of %s: %w", participantID, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func collectMensualidades(rows *sql.Rows) ([]models.Mensualidad, error) {
	list := []models.Mensualidad{}
	for rows.Next() {
		m, err := scanMensualidad(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mensualidad row: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMensualidad(row rowScanner) (models.Mensualidad, error) {
	var m models.Mensualidad
	var valor string
	var estado string
	var paidAt sql.NullTime
	err := row.Scan(
		&m.ID,
		&m.ParticipantID,
		&valor,
		&m.Mes,
		&m.Anio,
		&estado,
		&paidAt,
		&m.Observaciones,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return models.Mensualidad{}, err
	}
	m.Valor, err = strconv.ParseFloat(valor, 64)
	if err != nil {
		return models.Mensualidad{}, fmt.Errorf("invalid valor %q: %w", valor, err)
	}
	m.Estado = models.PaymentStatus(estado)
	if paidAt.Valid {
		t := paidAt.Time
		m.FechaPago = &t
	}
	return m, nil
}
