package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clutchplay/platform/internal/service"
	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the periodic maintenance jobs. Currently one job: flipping
// upcoming tournaments to live once their start time passes.
type Scheduler struct {
	sched  gocron.Scheduler
	logger *slog.Logger
}

// NewScheduler creates and starts the job scheduler.
func NewScheduler(tournamentSvc *service.TournamentService, logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := tournamentSvc.SweepDue(ctx); err != nil {
				logger.Error("tournament sweep failed", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("register sweep job: %w", err)
	}

	sched.Start()
	return &Scheduler{sched: sched, logger: logger}, nil
}

// Shutdown stops the scheduler, waiting for running jobs.
func (s *Scheduler) Shutdown() {
	if err := s.sched.Shutdown(); err != nil {
		s.logger.Warn("scheduler shutdown", "error", err)
	}
}
