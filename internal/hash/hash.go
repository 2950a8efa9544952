package hash

import "golang.org/x/crypto/bcrypt"

// Hasher produces salted bcrypt digests. The same scheme is used for
// passwords and OTP codes.
type Hasher struct {
	cost int
}

func New() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash returns a salted digest of secret. The salt is random per call, so
// equal inputs produce distinct digests.
func (h *Hasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether secret hashes to digest. Corrupt or foreign digest
// formats verify as false rather than erroring.
func (h *Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
