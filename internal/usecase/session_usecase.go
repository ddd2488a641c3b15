package usecase

import (
	"context"

	"frishta/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase manages opaque bearer sessions. Raw tokens exist only at
// issuance; every other operation works on the stored digest.
type SessionUsecase interface {
	// Issue mints a session for the user and returns the raw token.
	Issue(ctx context.Context, userID uuid.UUID, userAgent string) (string, error)

	// Resolve returns the live session for a token digest. Missing and
	// expired sessions are indistinguishable to the caller; an expired row
	// is dropped on the way out.
	Resolve(ctx context.Context, tokenHash string) (*entity.Session, error)

	// Revoke deletes the session for a token digest. Idempotent.
	Revoke(ctx context.Context, tokenHash string) error

	// CleanupExpired removes every expired session and reports the count.
	CleanupExpired(ctx context.Context) (int64, error)
}
