package domain

import (
	"errors"
	"time"
)

var (
	ErrOTPNotFound = errors.New("otp not found")
	ErrOTPExpired  = errors.New("otp expired")
	ErrOTPInvalid  = errors.New("invalid otp")
)

// OTPChallenge is one issued verification code, stored hashed. Challenges
// are never deleted on use; the most recently created row per email is
// authoritative.
type OTPChallenge struct {
	ID        string
	Email     string
	CodeHash  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
