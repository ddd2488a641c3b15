// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password credential derivation and
// verification. This abstracts the underlying KDF, keeping the domain pure.
type PasswordHasher interface {
	// Derive generates a fresh random salt and the derived digest for a
	// plaintext password. Both are hex-encoded for storage.
	Derive(password string) (salt string, hash string, err error)

	// Verify recomputes the digest with the stored salt and compares it to
	// the expected hash in constant time. Any mismatch, including a malformed
	// stored hash, yields false; no distinguishable error is surfaced.
	Verify(password, salt, expectedHash string) bool
}
