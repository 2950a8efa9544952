package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
	"github.com/ErlanBelekov/chat-auth-service/internal/metrics"
)

type fakeOTPRepo struct {
	deleteExpired func(ctx context.Context, now time.Time) (int64, error)
}

func (r *fakeOTPRepo) Create(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

func (r *fakeOTPRepo) LatestByEmail(_ context.Context, _ string) (*domain.OTPChallenge, error) {
	return nil, domain.ErrOTPNotFound
}

func (r *fakeOTPRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteExpired(ctx, now)
}

func newTestSweeper(repo *fakeOTPRepo) *Sweeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSweeper(repo, logger)
}

func TestSweep_CutoffIsCurrentTime(t *testing.T) {
	var capturedNow time.Time
	repo := &fakeOTPRepo{
		deleteExpired: func(_ context.Context, now time.Time) (int64, error) {
			capturedNow = now
			return 3, nil
		},
	}

	counterBefore := testutil.ToFloat64(metrics.OTPChallengesSweptTotal)

	before := time.Now()
	newTestSweeper(repo).sweep(context.Background())
	after := time.Now()

	// Only rows already past expiry may go; the cutoff must never sit in
	// the future, or an unexpired challenge could be removed.
	if capturedNow.Before(before) || capturedNow.After(after) {
		t.Errorf("cutoff %v outside [%v, %v]", capturedNow, before, after)
	}

	if got := testutil.ToFloat64(metrics.OTPChallengesSweptTotal) - counterBefore; got != 3 {
		t.Errorf("swept counter delta = %f, want 3", got)
	}
}

func TestSweep_NothingExpiredStaysQuiet(t *testing.T) {
	repo := &fakeOTPRepo{
		deleteExpired: func(_ context.Context, _ time.Time) (int64, error) {
			return 0, nil
		},
	}

	counterBefore := testutil.ToFloat64(metrics.OTPChallengesSweptTotal)
	newTestSweeper(repo).sweep(context.Background())

	if got := testutil.ToFloat64(metrics.OTPChallengesSweptTotal); got != counterBefore {
		t.Errorf("swept counter moved from %f to %f on an empty sweep", counterBefore, got)
	}
}

func TestSweep_StoreErrorDoesNotCount(t *testing.T) {
	repo := &fakeOTPRepo{
		deleteExpired: func(_ context.Context, _ time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}

	counterBefore := testutil.ToFloat64(metrics.OTPChallengesSweptTotal)
	newTestSweeper(repo).sweep(context.Background())

	if got := testutil.ToFloat64(metrics.OTPChallengesSweptTotal); got != counterBefore {
		t.Errorf("swept counter moved from %f to %f despite store error", counterBefore, got)
	}
}

func TestStart_InvalidScheduleRejected(t *testing.T) {
	repo := &fakeOTPRepo{}

	s := newTestSweeper(repo)
	if err := s.Start(context.Background(), "not a cron expression"); err == nil {
		t.Fatal("expected error for unparsable schedule")
	}
}

func TestStartStop_ValidSchedule(t *testing.T) {
	repo := &fakeOTPRepo{
		deleteExpired: func(_ context.Context, _ time.Time) (int64, error) {
			return 0, nil
		},
	}

	s := newTestSweeper(repo)
	if err := s.Start(context.Background(), "@every 1h"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
