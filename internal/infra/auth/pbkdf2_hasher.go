// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"frishta/config"
	"frishta/internal/domain/service"
	"frishta/internal/errors"
)

const (
	saltBytes = 16
	keyBytes  = 64
)

// pbkdf2Hasher derives password credentials with PBKDF2-SHA512. The salt is
// stored separately from the digest; both are hex-encoded.
type pbkdf2Hasher struct {
	iterations int
}

// NewPbkdf2Hasher is the constructor for pbkdf2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewPbkdf2Hasher(cfg *config.Config) service.PasswordHasher {
	return &pbkdf2Hasher{iterations: cfg.Auth.Pbkdf2Iterations}
}

// Derive generates a fresh 16-byte random salt and the PBKDF2 digest of the
// password under it. An RNG failure aborts the operation; it must never
// silently weaken the credential.
func (h *pbkdf2Hasher) Derive(password string) (string, string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", "", errors.Wrap(err, "failed to generate credential salt")
	}

	saltHex := hex.EncodeToString(salt)

	return saltHex, h.digest(password, saltHex), nil
}

// Verify recomputes the digest with the stored salt and compares in constant
// time. A wrong-length stored hash compares unequal rather than erroring.
func (h *pbkdf2Hasher) Verify(password, salt, expectedHash string) bool {
	computed := h.digest(password, salt)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}

// digest keys the password with the hex salt string itself, matching the
// stored credential encoding: hex(PBKDF2-SHA512(password, saltHex)).
func (h *pbkdf2Hasher) digest(password, saltHex string) string {
	key := pbkdf2.Key([]byte(password), []byte(saltHex), h.iterations, keyBytes, sha512.New)

	return hex.EncodeToString(key)
}
