package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"frishta/internal/errors"
)

// tokenBytes is the entropy of a raw bearer token. 48 bytes hex-encode to a
// fixed 96-character credential.
const tokenBytes = 48

// NewSessionToken mints a raw opaque bearer token. The caller hands the raw
// value to the client exactly once and persists only its digest.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}

	return hex.EncodeToString(buf), nil
}

// HashSessionToken returns the hex SHA-256 digest under which a session is
// stored and looked up.
func HashSessionToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))

	return hex.EncodeToString(sum[:])
}
