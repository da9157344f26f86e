package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *int:
			*p = r.values[i].(int)
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *sql.NullTime:
			if t, ok := r.values[i].(time.Time); ok {
				*p = sql.NullTime{Time: t, Valid: true}
			} else {
				*p = sql.NullTime{}
			}
		}
	}
	return nil
}

func TestEncodeRecordDropsManagedFields(t *testing.T) {
	payload, err := encodeRecord(models.Record{
		"id":         "x",
		"_id":        "y",
		"created_at": "2024",
		"nombres":    "Ana",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nombres":"Ana"}`, string(payload))
}

func TestScanRecord(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r, err := scanRecord(fakeRow{values: []any{
		"3f1c", []byte(`{"nombres":"Ana","sede":{"nombre":"Norte"}}`), created, created,
	}})
	require.NoError(t, err)
	assert.Equal(t, "3f1c", r.ID())
	assert.Equal(t, "Ana", r.String("nombres"))
	assert.Equal(t, "2024-01-02T03:04:05Z", r["created_at"])
	assert.IsType(t, map[string]any{}, r["sede"])

	_, err = scanRecord(fakeRow{values: []any{"bad", []byte(`{`), created, created}})
	assert.Error(t, err)

	_, err = scanRecord(fakeRow{err: sql.ErrNoRows})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestScanMensualidad(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	m, err := scanMensualidad(fakeRow{values: []any{
		"m-1", "p-1", "120000.00", 5, 2024, "PAGADO", now, "", now, now,
	}})
	require.NoError(t, err)
	assert.Equal(t, 120000.0, m.Valor)
	assert.Equal(t, models.StatusPaid, m.Estado)
	require.NotNil(t, m.FechaPago)
	assert.Equal(t, now, *m.FechaPago)

	m, err = scanMensualidad(fakeRow{values: []any{
		"m-2", "p-1", "5", 1, 2024, "PENDIENTE", nil, "nota", now, now,
	}})
	require.NoError(t, err)
	assert.Nil(t, m.FechaPago)
	assert.Equal(t, "nota", m.Observaciones)
}

func TestScanFile(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f, err := scanFile(fakeRow{values: []any{
		"f-1", "acta.pdf", "files/f-1.pdf", "", int64(2048), "application/pdf", "u-1", "clean", now, now,
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(2048), f.Size())
	require.NotNil(t, f.ScannedAt)
	assert.Equal(t, "clean", f.ScanStatus)
}

func TestInvalidIDsAreNotFound(t *testing.T) {
	p := &PostgresStorage{}
	ctx := context.Background()

	_, err := p.GetRecord(ctx, models.KindParticipant, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, p.DeleteRecord(ctx, models.KindSede, "42"), ErrNotFound)
	_, err = p.GetMensualidad(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
