package repository

import (
	"context"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
)

type ConversationRepository interface {
	// ListByUser returns the user's conversations, most recently
	// updated first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Create(ctx context.Context, userID, title string) (*domain.Conversation, error)
}
