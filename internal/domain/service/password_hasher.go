// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns a salted digest of the plaintext. It fails when the
	// password violates the configured strength policy.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}
