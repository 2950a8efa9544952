// Package maintenance hosts the opt-in background cleanup of expired OTP
// challenges. Superseded rows are never removed by the auth flow itself;
// the sweeper only touches rows already past their expiry, so the
// most-recent-challenge-wins verification semantics are unchanged.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ErlanBelekov/chat-auth-service/internal/metrics"
	"github.com/ErlanBelekov/chat-auth-service/internal/repository"
)

type Sweeper struct {
	challenges repository.OTPRepository
	logger     *slog.Logger
	cron       *cron.Cron
}

func NewSweeper(challenges repository.OTPRepository, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		challenges: challenges,
		logger:     logger.With("component", "otp_sweeper"),
		cron:       cron.New(),
	}
}

// Start registers the sweep job under the given cron schedule and starts
// the scheduler. Returns an error for an unparsable schedule.
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("otp sweeper started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	deleted, err := s.challenges.DeleteExpired(sweepCtx, time.Now())
	if err != nil {
		s.logger.Error("sweep expired otp challenges", "error", err)
		return
	}
	if deleted > 0 {
		metrics.OTPChallengesSweptTotal.Add(float64(deleted))
		s.logger.Info("swept expired otp challenges", "deleted", deleted)
	}
}
