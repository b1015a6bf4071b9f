// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Flusher re-attempts durable writes that previously failed.
type Flusher interface {
	FlushPending(ctx context.Context) int
}

// Scheduler periodically resyncs state whose best-effort durable write failed.
type Scheduler struct {
	cron    *cron.Cron
	flusher Flusher
}

// New registers the resync job on schedule (standard cron syntax or descriptors
// such as "@every 30s").
func New(schedule string, flusher Flusher) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		flusher: flusher,
	}

	if _, err := s.cron.AddFunc(schedule, s.Resync); err != nil {
		return nil, fmt.Errorf("invalid resync schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Resync runs one flush pass.
func (s *Scheduler) Resync() {
	if n := s.flusher.FlushPending(context.Background()); n > 0 {
		log.Printf("scheduler: resynced %d mode(s) to the durable store", n)
	}
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
