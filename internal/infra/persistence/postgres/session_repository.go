package postgres

import (
	"context"
	"time"

	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/repository"
	"frishta/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// A digest collision means the token generator failed; treat it
			// as a server fault rather than retrying silently.
			return domainerrors.NewDatabaseExecuteError(err, "session token digest already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByTokenHash retrieves a session by its token digest.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).First(&sessionM, "token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token hash")
	}

	return toSessionDomain(&sessionM), nil
}

// DeleteByTokenHash removes the matching session. Idempotent.
func (repo *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "token_hash = ?", tokenHash).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "expires_at <= ?", time.Now())
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		UserAgent: data.UserAgent,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		UserAgent: data.UserAgent,
		ExpiresAt: data.ExpiresAt,
	}
}
