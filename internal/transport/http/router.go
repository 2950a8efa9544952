package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/ErlanBelekov/chat-auth-service/internal/token"
	"github.com/ErlanBelekov/chat-auth-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/chat-auth-service/internal/transport/http/middleware"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, chatHandler *handler.ChatHandler, tokens *token.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	auth := r.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)

	// Protected chat routes
	chat := r.Group("/api/chat", middleware.Auth(tokens))
	chat.GET("/conversations", chatHandler.ListConversations)
	chat.POST("/conversations", chatHandler.CreateConversation)

	return r
}
