package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
	"github.com/ErlanBelekov/chat-auth-service/internal/metrics"
	"github.com/ErlanBelekov/chat-auth-service/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	VerifyOTP(ctx context.Context, email, code string) (*usecase.AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
// Creates an unverified account and sends the first OTP. Never returns a
// token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmail})
			return
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to email",
		"email":   req.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
// Unknown email and wrong password answer with the same 400.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if !result.Verified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"verified": false,
			"message":  "OTP sent to email",
		})
		return
	}

	metrics.LoginsTotal.WithLabelValues("verified").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"verified": true,
		"token":    result.Auth.Token,
		"user":     result.Auth.User,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp"   binding:"required"`
}

// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authUsecase.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errOTPNotFound})
		case errors.Is(err, domain.ErrOTPExpired):
			metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errOTPExpired})
		case errors.Is(err, domain.ErrOTPInvalid):
			metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errOTPInvalid})
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailNotRegistered})
		default:
			metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "verify otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

type resendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/auth/resend-otp
// Rejected for unknown emails and for accounts that already verified.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ResendOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailNotRegistered})
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": errAlreadyVerified})
		default:
			h.logger.ErrorContext(c.Request.Context(), "resend otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent",
	})
}
