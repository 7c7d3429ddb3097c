package driven

// PasswordHasher handles one-way salted password hashing.
// This does NOT handle storage - use AccountStore for persistence.
type PasswordHasher interface {
	// Hash derives a salted digest from a plaintext password.
	// A hashing failure is fatal to the calling operation.
	Hash(password string) (string, error)

	// Verify re-derives and compares in constant time.
	// Returns false on mismatch, never an error.
	Verify(password, hash string) bool
}
