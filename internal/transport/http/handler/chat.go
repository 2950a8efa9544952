package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
)

// conversationUsecaser is the subset of ConversationUsecase the handler
// needs.
type conversationUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Create(ctx context.Context, userID, title string) (*domain.Conversation, error)
}

type ChatHandler struct {
	conversations conversationUsecaser
	logger        *slog.Logger
}

func NewChatHandler(conversations conversationUsecaser, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		logger:        logger.With("component", "chat_handler"),
	}
}

// GET /api/chat/conversations
// Scoped to the authenticated caller, most recently updated first.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := c.GetString("userID")

	conversations, err := h.conversations.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list conversations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": conversations,
	})
}

type createConversationRequest struct {
	Title string `json:"title" binding:"omitempty,max=100"`
}

// POST /api/chat/conversations
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")

	conversation, err := h.conversations.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create conversation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"conversation": conversation,
	})
}
