package repository

import (
	"context"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
)

type UserRepository interface {
	// Create inserts a new unverified user. Returns domain.ErrDuplicateEmail
	// if the email is already registered (enforced by a unique constraint).
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// MarkVerified sets the verification flag and refreshes updated_at.
	// Idempotent.
	MarkVerified(ctx context.Context, email string) error
	// TouchLogin records the time of a successful verified login.
	TouchLogin(ctx context.Context, email string) error
}
