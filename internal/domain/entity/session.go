package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an authenticated bearer session. The raw token is
// returned to the client exactly once at login; only its SHA-256 hex digest
// is persisted, and that digest is the record key.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID // The owning identity.
	TokenHash string    // Unique digest of the raw bearer token.
	UserAgent string    // Informational client metadata only.
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given
// instant. An expired session is invalid for authentication even while the
// row still exists in storage.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
