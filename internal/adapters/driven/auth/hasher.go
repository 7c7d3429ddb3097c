package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Ensure Hasher implements PasswordHasher
var _ driven.PasswordHasher = (*Hasher)(nil)

// Hasher handles password hashing using bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a new bcrypt hasher with the default cost
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost creates a new bcrypt hasher with a custom cost.
// Lower costs are useful in tests.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash generates a bcrypt hash from a plaintext password.
// bcrypt embeds a random salt, so two hashes of the same input differ.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks if a password matches a bcrypt hash.
// The comparison inside bcrypt is constant-time.
func (h *Hasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
