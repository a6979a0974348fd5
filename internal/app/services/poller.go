package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Poller periodically refetches the full dataset so the local view tracks
// what other portal users changed. A tick is skipped while a sync is
// already in flight; superseded fetches are not cancelled, a stale result
// is tolerated because full-state refetches are idempotent and the next
// tick corrects it.
type Poller struct {
	svc      *ScheduleService
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller creates a poller over the schedule service.
func NewPoller(svc *ScheduleService, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until the context is cancelled, refreshing the dataset every
// interval. Intended to be started in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Info().Msg("background polling disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("background polling started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("background polling stopped")
			return
		case <-ticker.C:
			if p.svc.SyncInFlight() {
				p.logger.Debug().Msg("skipping poll tick, sync already in flight")
				continue
			}
			if err := p.svc.Refresh(ctx); err != nil {
				p.logger.Warn().Err(err).Msg("background poll failed")
			}
		}
	}
}
