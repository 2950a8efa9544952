package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
	"github.com/ErlanBelekov/chat-auth-service/internal/email"
	"github.com/ErlanBelekov/chat-auth-service/internal/hash"
	"github.com/ErlanBelekov/chat-auth-service/internal/metrics"
	"github.com/ErlanBelekov/chat-auth-service/internal/repository"
)

const otpTTL = 5 * time.Minute

// OTPService issues and verifies one-time passcodes. Codes are stored
// hashed with the same scheme as passwords; issuing never invalidates
// prior challenges, and the most recent challenge wins on verify.
type OTPService struct {
	challenges repository.OTPRepository
	hasher     *hash.Hasher
	sender     email.Sender
	ttl        time.Duration
}

func NewOTPService(challenges repository.OTPRepository, hasher *hash.Hasher, sender email.Sender) *OTPService {
	return &OTPService{
		challenges: challenges,
		hasher:     hasher,
		sender:     sender,
		ttl:        otpTTL,
	}
}

// generateCode returns a random zero-padded 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates a fresh code, stores its hash with a 5-minute expiry, and
// hands the plaintext to the email sender.
func (s *OTPService) Issue(ctx context.Context, emailAddr string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("hash otp code: %w", err)
	}

	if err := s.challenges.Create(ctx, emailAddr, codeHash, time.Now().Add(s.ttl)); err != nil {
		return fmt.Errorf("store otp challenge: %w", err)
	}
	metrics.OTPChallengesIssuedTotal.Inc()

	subject := "Your verification code"
	body := fmt.Sprintf(
		`<p>Your verification code is <strong>%s</strong>. It expires in 5 minutes.</p>`,
		code,
	)
	if err := s.sender.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// Verify checks code against the most recent challenge for emailAddr.
// Fails with domain.ErrOTPNotFound, domain.ErrOTPExpired, or
// domain.ErrOTPInvalid. The challenge is not consumed on success and stays
// verifiable until it expires.
func (s *OTPService) Verify(ctx context.Context, emailAddr, code string) error {
	challenge, err := s.challenges.LatestByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	if !time.Now().Before(challenge.ExpiresAt) {
		return domain.ErrOTPExpired
	}

	if !s.hasher.Verify(code, challenge.CodeHash) {
		return domain.ErrOTPInvalid
	}
	return nil
}
