package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	calls int
	err   error
}

func (f *fakeMarker) MarkOverdue(context.Context) ([]string, error) {
	f.calls++
	return []string{"a"}, f.err
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := NewScheduler("every day", &fakeMarker{})
	assert.Error(t, err)

	_, err = NewScheduler("0 0 2 * *", &fakeMarker{})
	assert.Error(t, err, "five fields are not accepted")
}

func TestSchedulerRunOverdue(t *testing.T) {
	marker := &fakeMarker{}
	s, err := NewScheduler("0 0 2 * * *", marker)
	require.NoError(t, err)

	s.RunOverdue()
	marker.err = errors.New("db down")
	s.RunOverdue()
	assert.Equal(t, 2, marker.calls)
}

func TestSchedulerNext(t *testing.T) {
	s, err := NewScheduler("0 0 2 * * *", &fakeMarker{})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next()
	require.False(t, next.IsZero())
	assert.Equal(t, 2, next.Hour())
	assert.Equal(t, 0, next.Minute())
}
