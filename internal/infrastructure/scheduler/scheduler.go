package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iho/shopledger/internal/usecase"
)

// Scheduler runs the periodic snapshot capture on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New wires the snapshot capture job onto the given cron spec.
func New(spec string, snapshots *usecase.SnapshotUseCase, logger zerolog.Logger) (*Scheduler, error) {
	logger = logger.With().Str("component", "scheduler").Logger()

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		meta, err := snapshots.Capture(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("scheduled snapshot failed")
			return
		}
		logger.Info().
			Str("snapshot_id", meta.ID).
			Str("snapshot_date", meta.SnapshotDate).
			Int("rows", meta.RowCount).
			Msg("scheduled snapshot captured")
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("snapshot scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("snapshot scheduler stopped")
}
