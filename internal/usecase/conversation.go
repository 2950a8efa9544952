package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
	"github.com/ErlanBelekov/chat-auth-service/internal/repository"
)

const defaultConversationTitle = "New Conversation"

type ConversationUsecase struct {
	conversations repository.ConversationRepository
}

func NewConversationUsecase(conversations repository.ConversationRepository) *ConversationUsecase {
	return &ConversationUsecase{conversations: conversations}
}

// List returns the caller's conversations, most recently updated first.
func (u *ConversationUsecase) List(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	conversations, err := u.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// Create starts an empty conversation for the caller. An empty title falls
// back to the default.
func (u *ConversationUsecase) Create(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	if title == "" {
		title = defaultConversationTitle
	}
	conversation, err := u.conversations.Create(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conversation, nil
}
