package impl

import (
	"context"
	"log/slog"
	"time"

	"frishta/config"
	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/repository"
	"frishta/internal/infra/auth"
	"frishta/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	ttl         time.Duration
	logger      *slog.Logger

	now func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	cfg *config.Config,
	sessionRepo repository.SessionRepository,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo: sessionRepo,
		ttl:         time.Duration(cfg.Auth.SessionTTLDays) * 24 * time.Hour,
		logger:      logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue mints a session for the user and returns the raw token. Only the
// digest is stored.
func (srv *sessionService) Issue(ctx context.Context, userID uuid.UUID, userAgent string) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", errors.Wrap(err, "failed to mint session token")
	}

	session := &entity.Session{
		UserID:    userID,
		TokenHash: auth.HashSessionToken(token),
		UserAgent: userAgent,
		ExpiresAt: srv.now().Add(srv.ttl),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to persist session")
	}

	srv.log(ctx).Info("Session issued", slog.Any("user_id", userID))

	return token, nil
}

// Resolve returns the live session for a token digest. Expiry is lazy: an
// expired row found here is deleted before the caller sees a uniform
// invalid-session error.
func (srv *sessionService) Resolve(ctx context.Context, tokenHash string) (*entity.Session, error) {
	session, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrInvalidSession.WrapMessage("unknown session token")
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.Expired(srv.now()) {
		if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			srv.log(ctx).Warn("Failed to drop expired session", slog.Any("error", err))
		}

		return nil, domainerrors.ErrInvalidSession.WrapMessage("session expired")
	}

	return session, nil
}

// Revoke deletes the session for a token digest. Revoking an already-revoked
// token is a no-op.
func (srv *sessionService) Revoke(ctx context.Context, tokenHash string) error {
	if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// CleanupExpired removes every expired session and reports the count.
func (srv *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	count, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to cleanup expired sessions")
	}

	if count > 0 {
		srv.log(ctx).Info("Expired sessions removed", slog.Int64("count", count))
	}

	return count, nil
}
