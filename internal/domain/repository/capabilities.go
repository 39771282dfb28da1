package repository

// PasswordHasher is the one-way salted hashing capability consumed by the
// account manager. The hash format is opaque to the core.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// TokenIssuer mints opaque session tokens keyed by username.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}
