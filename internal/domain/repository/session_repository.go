package repository

import (
	"context"
	"errors"

	"frishta/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session matches a token digest.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists bearer sessions, keyed by token digest.
type SessionRepository interface {
	// Create persists a new session. The token digest is globally unique.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by its token digest, or
	// ErrSessionNotFound. Expiry is not checked here; resolution semantics
	// belong to the session manager.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes the matching session. Idempotent: deleting an
	// absent digest is not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes all sessions past their expiry. Hygiene only;
	// correctness never depends on it.
	DeleteExpired(ctx context.Context) (int64, error)
}
