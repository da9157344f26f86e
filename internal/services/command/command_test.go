package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	payload any
}

type fakePublisher struct {
	events []published
	err    error
}

func (f *fakePublisher) Publish(subject string, payload any) error {
	f.events = append(f.events, published{subject, payload})
	return f.err
}

type fakeStore struct {
	Store
	mensualidades map[string]models.Mensualidad
	overdue       []string
	deleted       []string
	err           error
}

func (f *fakeStore) GetMensualidad(_ context.Context, id string) (models.Mensualidad, error) {
	m, ok := f.mensualidades[id]
	if !ok {
		return models.Mensualidad{}, errors.New("not found")
	}
	return m, nil
}

func (f *fakeStore) SetMensualidadStatus(_ context.Context, id string, status models.PaymentStatus, at time.Time) (models.Mensualidad, error) {
	m := f.mensualidades[id]
	m.Estado = status
	m.FechaPago = nil
	if status == models.StatusPaid {
		m.FechaPago = &at
	}
	f.mensualidades[id] = m
	return m, nil
}

func (f *fakeStore) CreateMensualidad(_ context.Context, m models.Mensualidad) (models.Mensualidad, error) {
	m.ID = "m-new"
	return m, f.err
}

func (f *fakeStore) MarkOverdue(_ context.Context, year, month int) ([]string, error) {
	return f.overdue, f.err
}

func (f *fakeStore) DeleteRecord(_ context.Context, kind models.Kind, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, kind.Collection()+"/"+id)
	return nil
}

func newService(store *fakeStore, pub *fakePublisher) *Service {
	s := New(store, pub)
	s.now = func() time.Time { return time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestToggleMensualidad(t *testing.T) {
	store := &fakeStore{mensualidades: map[string]models.Mensualidad{
		"a": {ID: "a", Estado: models.StatusPending},
		"b": {ID: "b", Estado: models.StatusOverdue},
	}}
	pub := &fakePublisher{}
	s := newService(store, pub)
	ctx := context.Background()

	m, err := s.ToggleMensualidad(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, m.Estado)
	require.NotNil(t, m.FechaPago)

	m, err = s.ToggleMensualidad(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, m.Estado)
	assert.Nil(t, m.FechaPago)

	m, err = s.ToggleMensualidad(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, m.Estado)

	require.Len(t, pub.events, 3)
	assert.Equal(t, models.SubjectMensualidadToggled, pub.events[0].subject)

	_, err = s.ToggleMensualidad(ctx, "missing")
	assert.Error(t, err)
}

func TestCreateMensualidadStampsPayment(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats down")}
	s := newService(&fakeStore{}, pub)

	m, err := s.CreateMensualidad(context.Background(), models.Mensualidad{Estado: models.StatusPaid})
	require.NoError(t, err, "publish failures do not fail the write")
	require.NotNil(t, m.FechaPago)
	assert.Equal(t, 2024, m.FechaPago.Year())

	m, err = s.CreateMensualidad(context.Background(), models.Mensualidad{Estado: models.StatusPending})
	require.NoError(t, err)
	assert.Nil(t, m.FechaPago)
}

func TestMarkOverdue(t *testing.T) {
	pub := &fakePublisher{}
	s := newService(&fakeStore{overdue: []string{"x", "y"}}, pub)

	ids, err := s.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ids)
	require.Len(t, pub.events, 1)
	ev := pub.events[0].payload.(models.OverdueEvent)
	assert.Equal(t, []string{"x", "y"}, ev.IDs)

	pub.events = nil
	s = newService(&fakeStore{}, pub)
	_, err = s.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pub.events, "nothing to announce")
}

func TestDeleteRecordPublishes(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	s := newService(store, pub)

	require.NoError(t, s.DeleteRecord(context.Background(), models.KindParticipant, "p-1"))
	assert.Equal(t, []string{"participants/p-1"}, store.deleted)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "participants.deleted", pub.events[0].subject)

	store.err = errors.New("boom")
	assert.Error(t, s.DeleteRecord(context.Background(), models.KindParticipant, "p-2"))
	assert.Len(t, pub.events, 1)
}
