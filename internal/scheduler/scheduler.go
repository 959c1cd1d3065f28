// Package scheduler runs the nightly refresh when the worker is
// started in daemon mode.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/config"
	syncsvc "github.com/kimhyunseo/kbo-calendar/internal/sync"
)

// Scheduler manages the background refresh of the schedule and
// standings documents. The current month and the upcoming month are
// resynced on every run, along with the current season's standings.
type Scheduler struct {
	cfg  *config.Config
	svc  *syncsvc.Service
	cron *cron.Cron
	note string
}

// New creates a scheduler around a sync service.
func New(cfg *config.Config, svc *syncsvc.Service, note string) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		svc:  svc,
		cron: cron.New(),
		note: note,
	}
}

// Start registers the nightly refresh job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyRefreshCron, func() {
		log.Info().Msg("Running nightly refresh...")
		if err := s.refresh(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly refresh: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlyRefreshCron).
		Msg("Nightly refresh scheduled")

	return nil
}

// Stop stops the cron loop. Jobs already running finish on their own.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Info().Msg("Scheduler stopped")
}

// refresh resyncs the current and next month's schedule and the
// current season's standings. Month failures are logged and do not
// block the remaining steps.
func (s *Scheduler) refresh(ctx context.Context) error {
	start := time.Now()
	now := time.Now()

	months := []time.Time{now, now.AddDate(0, 1, 0)}
	for _, m := range months {
		res, err := s.svc.SyncMonth(ctx, m.Year(), int(m.Month()), s.note)
		if err != nil {
			log.Error().Err(err).
				Int("year", m.Year()).
				Int("month", int(m.Month())).
				Msg("Month refresh failed")
			continue
		}
		log.Info().
			Int("year", res.Year).
			Int("month", res.Month).
			Int("new", res.New).
			Int("updated", res.Updated).
			Msg("Month refreshed")
	}

	season := fmt.Sprintf("%d", now.Year())
	if _, err := s.svc.SyncStandings(ctx, season); err != nil {
		return fmt.Errorf("failed to refresh standings: %w", err)
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Msg("Nightly refresh complete")
	return nil
}
