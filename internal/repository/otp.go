package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
)

type OTPRepository interface {
	// Create appends a new challenge. Prior challenges for the same email
	// are left in place; they are superseded, not removed.
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	// LatestByEmail returns the most recently created challenge for email,
	// or domain.ErrOTPNotFound.
	LatestByEmail(ctx context.Context, email string) (*domain.OTPChallenge, error)
	// DeleteExpired removes challenges whose expiry is before now and
	// returns the number deleted. Used only by the maintenance sweeper.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
