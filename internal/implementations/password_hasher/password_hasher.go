package passwordhasher

import (
	"crypto/sha256"
	"encoding/hex"
	"userapi/internal/core/domain/user"

	"golang.org/x/crypto/pbkdf2"
)

// SHA256 produces unsalted hex digests compatible with the legacy users table.
type SHA256 struct{}

func NewSHA256() *SHA256 {
	return &SHA256{}
}

func (h *SHA256) HashPassword(password user.RawPassword) user.PasswordHash {
	sum := sha256.Sum256([]byte(password))
	return user.PasswordHash(hex.EncodeToString(sum[:]))
}

// PBKDF2 derives a key with an application-wide pepper used as the salt.
// The result is deterministic, so the stored digest can still be matched exactly on log in.
type PBKDF2 struct {
	pepper     []byte
	iterations int
}

func NewPBKDF2(pepper string, iterations int) *PBKDF2 {
	if iterations < 1 {
		panic("pbkdf2 iterations must be positive")
	}
	return &PBKDF2{pepper: []byte(pepper), iterations: iterations}
}

func (h *PBKDF2) HashPassword(password user.RawPassword) user.PasswordHash {
	key := pbkdf2.Key([]byte(password), h.pepper, h.iterations, sha256.Size, sha256.New)
	return user.PasswordHash(hex.EncodeToString(key))
}
