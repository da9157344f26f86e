package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// OverdueMarker is the job run by the scheduler.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) ([]string, error)
}

// Scheduler runs the periodic overdue sweep, the only path by which a
// mensualidad becomes VENCIDA.
type Scheduler struct {
	cron    *cron.Cron
	marker  OverdueMarker
	timeout time.Duration
}

// NewScheduler parses schedule as a six-field cron expression (with seconds).
func NewScheduler(schedule string, marker OverdueMarker) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		marker:  marker,
		timeout: time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOverdue); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[CRON] overdue sweep scheduled, next run %s", s.Next().Format(time.RFC3339))
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[CRON] scheduler stopped")
}

// Next returns the time of the next sweep.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunOverdue performs one sweep.
func (s *Scheduler) RunOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	ids, err := s.marker.MarkOverdue(ctx)
	if err != nil {
		log.Printf("[CRON] overdue sweep failed: %v", err)
		return
	}
	log.Printf("[CRON] overdue sweep marked %d mensualidades", len(ids))
}
