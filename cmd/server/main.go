package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ErlanBelekov/chat-auth-service/config"
	"github.com/ErlanBelekov/chat-auth-service/internal/email"
	"github.com/ErlanBelekov/chat-auth-service/internal/hash"
	"github.com/ErlanBelekov/chat-auth-service/internal/health"
	"github.com/ErlanBelekov/chat-auth-service/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/chat-auth-service/internal/log"
	"github.com/ErlanBelekov/chat-auth-service/internal/maintenance"
	"github.com/ErlanBelekov/chat-auth-service/internal/metrics"
	"github.com/ErlanBelekov/chat-auth-service/internal/token"
	httptransport "github.com/ErlanBelekov/chat-auth-service/internal/transport/http"
	"github.com/ErlanBelekov/chat-auth-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/chat-auth-service/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	otpRepo := postgres.NewOTPRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)

	hasher := hash.New()
	tokens := token.NewService([]byte(cfg.JWTSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	otpService := usecase.NewOTPService(otpRepo, hasher, sender)
	authUsecase := usecase.NewAuthUsecase(userRepo, otpService, hasher, tokens)
	conversationUsecase := usecase.NewConversationUsecase(conversationRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	chatHandler := handler.NewChatHandler(conversationUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, chatHandler, tokens),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	sweeper := maintenance.NewSweeper(otpRepo, logger)
	if cfg.OTPSweepSchedule != "" {
		if err := sweeper.Start(ctx, cfg.OTPSweepSchedule); err != nil {
			stop()
			log.Fatalf("otp sweeper: %v", err)
		}
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	if cfg.OTPSweepSchedule != "" {
		sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
