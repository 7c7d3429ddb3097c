package mocks

import (
	"github.com/fieldworks/auth-core/internal/core/ports/driven"
)

// Ensure MockPasswordHasher implements PasswordHasher
var _ driven.PasswordHasher = (*MockPasswordHasher)(nil)

// MockPasswordHasher uses plain text comparison. NOT secure - only
// for testing.
type MockPasswordHasher struct {
	// FailHash makes Hash return an error, simulating a crypto failure
	FailHash bool
}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash returns the password with a marker prefix (for testing only)
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.FailHash {
		return "", errHashFailed
	}
	return "hashed:" + password, nil
}

// Verify compares against the marker-prefixed plaintext
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	return "hashed:"+password == hash
}

var errHashFailed = &hashError{}

type hashError struct{}

func (e *hashError) Error() string { return "hash failed" }
