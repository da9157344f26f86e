package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records map[models.Kind][]models.Record
	err     error
	calls   int
}

func (f *fakeSource) List(_ context.Context, kind models.Kind) ([]models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[kind], nil
}

func newFixture() *fakeSource {
	return &fakeSource{records: map[models.Kind][]models.Record{
		models.KindParticipant: {
			{"id": 5.0, "numero_documento": "123"},
			{"id": "p-2", "numero_documento": "456"},
		},
		models.KindGuardian: {
			{"_id": "g-1", "numero_documento": "789"},
		},
		models.KindSede: {
			{"id": "s-1", "nombre": "Norte"},
		},
	}}
}

func TestDocumentUniqueness(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(newFixture(), nil)

	res := v.DocumentUniqueness(ctx, models.KindParticipant, "123", "")
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message(), "ya está registrado")

	res = v.DocumentUniqueness(ctx, models.KindParticipant, "123", "5")
	assert.True(t, res.IsValid)
	assert.Nil(t, res.Error)

	res = v.DocumentUniqueness(ctx, models.KindParticipant, "999", "")
	assert.True(t, res.IsValid)

	res = v.DocumentUniqueness(ctx, models.KindGuardian, "123", "")
	assert.True(t, res.IsValid)
}

func TestDocumentUniquenessBlankSkipsFetch(t *testing.T) {
	src := newFixture()
	v := NewValidator(src, nil)

	res := v.DocumentUniqueness(context.Background(), models.KindParticipant, "  ", "")
	assert.False(t, res.IsValid)
	assert.Equal(t, 0, src.calls)
}

func TestFetchFailureAsymmetry(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(&fakeSource{err: errors.New("connection refused")}, nil)

	assert.True(t, v.DocumentUniqueness(ctx, models.KindParticipant, "123", "").IsValid)

	res := v.Existence(ctx, models.KindParticipant, "5")
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Message())
}

func TestExistence(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(newFixture(), nil)

	assert.True(t, v.Existence(ctx, models.KindParticipant, "5").IsValid)
	assert.True(t, v.Existence(ctx, models.KindGuardian, "g-1").IsValid, "_id is accepted")
	assert.True(t, v.Existence(ctx, models.KindSede, "s-1").IsValid)

	res := v.Existence(ctx, models.KindSede, "s-9")
	assert.False(t, res.IsValid)
	assert.Equal(t, "El sede seleccionado no existe", res.Message())

	res = v.Existence(ctx, models.KindGuardian, "")
	assert.Equal(t, "El acudiente es requerido", res.Message())
}

func TestRelational(t *testing.T) {
	ctx := context.Background()
	src := newFixture()
	v := NewValidator(src, nil)

	assert.True(t, v.Relational(ctx, "p-2", "g-1").IsValid)

	src.calls = 0
	res := v.Relational(ctx, "missing", "g-1")
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message(), "participante")
	assert.Equal(t, 1, src.calls, "stops at the first failure")

	res = v.Relational(ctx, "p-2", "missing")
	assert.Contains(t, res.Message(), "acudiente")
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ana@example.com", true},
		{"ana.perez@sub.example.co", true},
		{"", false},
		{"ana", false},
		{"ana@example", false},
		{"ana@@example.com", false},
		{"ana perez@example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, Email(tt.value).IsValid, tt.value)
	}
}

func TestPastDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	assert.True(t, pastDate("2000-01-01", LabelBirthDate, now).IsValid)
	assert.True(t, pastDate("2024-06-01", LabelBirthDate, now).IsValid, "today is allowed")
	assert.True(t, pastDate("2024-06-01T22:00:00Z", LabelEntryDate, now).IsValid)

	res := pastDate("2024-06-02", LabelBirthDate, now)
	assert.False(t, res.IsValid)
	assert.Equal(t, "La fecha de nacimiento no puede ser una fecha futura", res.Message())

	res = pastDate("", LabelEntryDate, now)
	assert.Equal(t, "La fecha de ingreso es requerida", res.Message())

	res = pastDate("31/02/2024x", LabelEntryDate, now)
	assert.Equal(t, "La fecha de ingreso no es válida", res.Message())
}

func TestValidateRecord(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(newFixture(), nil)
	v.now = func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

	errs := v.ValidateRecord(ctx, models.KindParticipant, models.Record{
		"numero_documento": "123",
		"email":            "no-es-correo",
		"fecha_nacimiento": "2030-01-01",
		"sede_id":          "s-9",
		"acudiente_id":     "g-1",
	}, "")
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "numero_documento")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "fecha_nacimiento")
	assert.Contains(t, errs, "sede_id")

	errs = v.ValidateRecord(ctx, models.KindParticipant, models.Record{
		"id":               5.0,
		"numero_documento": "123",
		"fecha_nacimiento": "2010-04-03",
		"sede_id":          "s-1",
	}, "5")
	assert.Empty(t, errs)

	errs = v.ValidateRecord(ctx, models.KindSede, models.Record{"nombre": "Sur"}, "")
	assert.Empty(t, errs)
}
