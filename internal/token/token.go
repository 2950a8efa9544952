package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ErlanBelekov/chat-auth-service/internal/domain"
)

const defaultTTL = 24 * time.Hour

// Claims are the identity fields embedded in every bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and validates HS256-signed bearer tokens. The signing key
// is fixed at construction; rotating it invalidates all outstanding tokens.
type Service struct {
	key []byte
	ttl time.Duration
}

func NewService(key []byte) *Service {
	return &Service{key: key, ttl: defaultTTL}
}

// Issue signs a token carrying the user's identity, expiring after the
// service TTL.
func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Validate verifies signature and expiry and returns the embedded claims.
// Expired tokens fail with domain.ErrExpiredToken; every other failure
// (bad signature, malformed structure, missing identity claims) is
// domain.ErrInvalidToken.
func (s *Service) Validate(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
