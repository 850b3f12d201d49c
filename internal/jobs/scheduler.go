package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"mentorhub/api/internal/repository"
)

// Scheduler runs periodic maintenance: revoked refresh tokens are kept only
// until their natural expiry, then swept from the blacklist.
type Scheduler struct {
	cron      *cron.Cron
	blacklist *repository.BlacklistRepository
	log       zerolog.Logger
}

func NewScheduler(blacklist *repository.BlacklistRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		blacklist: blacklist,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeBlacklist); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits briefly for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeBlacklist() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.blacklist.PurgeExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("blacklist purge failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("expired blacklist entries removed")
	}
}
