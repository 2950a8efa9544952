package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
	"github.com/ErlanBelekov/chat-auth-service/internal/hash"
	"github.com/ErlanBelekov/chat-auth-service/internal/repository"
	"github.com/ErlanBelekov/chat-auth-service/internal/token"
)

// otpIssuer is the slice of OTPService the auth flow needs. Satisfied by
// *OTPService; tests inject a fake.
type otpIssuer interface {
	Issue(ctx context.Context, emailAddr string) error
	Verify(ctx context.Context, emailAddr, code string) error
}

// AuthResult is returned once a caller holds a valid session: a signed
// bearer token plus the public user projection.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// LoginResult distinguishes the verified path (token issued) from the
// unverified one (fresh OTP sent, no token).
type LoginResult struct {
	Verified bool
	Auth     *AuthResult // nil when Verified is false
}

// AuthUsecase drives the signup / login / OTP verification state machine.
// Per email the states are: unregistered -> registered unverified ->
// registered verified.
type AuthUsecase struct {
	users  repository.UserRepository
	otp    otpIssuer
	hasher *hash.Hasher
	tokens *token.Service
}

func NewAuthUsecase(users repository.UserRepository, otp otpIssuer, hasher *hash.Hasher, tokens *token.Service) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		otp:    otp,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup creates an unverified user and sends the first OTP challenge.
// Never returns a token. Fails with domain.ErrDuplicateEmail if the email
// is already registered; the existing user is left untouched.
func (u *AuthUsecase) Signup(ctx context.Context, name, emailAddr, password string) error {
	passwordHash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := u.users.Create(ctx, name, emailAddr, passwordHash); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}

	if err := u.otp.Issue(ctx, emailAddr); err != nil {
		return fmt.Errorf("issue signup otp: %w", err)
	}
	return nil
}

// Login checks credentials. Unknown email and wrong password fail with the
// same domain.ErrInvalidCredentials so the response does not reveal whether
// the account exists. An unverified user gets a fresh OTP and no token; a
// verified user gets a bearer token and has last_login refreshed.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		if err := u.otp.Issue(ctx, emailAddr); err != nil {
			return nil, fmt.Errorf("issue login otp: %w", err)
		}
		return &LoginResult{Verified: false}, nil
	}

	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := u.users.TouchLogin(ctx, emailAddr); err != nil {
		return nil, fmt.Errorf("touch login: %w", err)
	}

	return &LoginResult{
		Verified: true,
		Auth:     &AuthResult{Token: signed, User: user.Public()},
	}, nil
}

// VerifyOTP validates the most recent challenge for the email, marks the
// user verified, and issues a token. Marking is idempotent, so verifying
// twice before the challenge expires succeeds both times.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, emailAddr, code string) (*AuthResult, error) {
	if err := u.otp.Verify(ctx, emailAddr, code); err != nil {
		return nil, err
	}

	if err := u.users.MarkVerified(ctx, emailAddr); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("find verified user: %w", err)
	}

	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: signed, User: user.Public()}, nil
}

// ResendOTP issues a fresh challenge for a registered, still-unverified
// user. Verified users are rejected with domain.ErrAlreadyVerified.
func (u *AuthUsecase) ResendOTP(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	if err := u.otp.Issue(ctx, emailAddr); err != nil {
		return fmt.Errorf("issue resend otp: %w", err)
	}
	return nil
}
