package postgres

import (
	"context"

	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/repository"
	"frishta/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// otpRepository implements the repository.OtpRepository interface using GORM.
type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository is the constructor for otpRepository.
func NewOtpRepository(db *gorm.DB) repository.OtpRepository {
	return &otpRepository{db: db}
}

// Replace atomically writes the record for an email: ON CONFLICT on the email
// primary key overwrites hash, expiry and attempt counter in one statement,
// which is what makes concurrent issuance last-write-wins.
func (repo *otpRepository) Replace(ctx context.Context, record *entity.OtpCode) error {
	recordM := fromOtpDomain(record)

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp_hash", "expires_at", "attempts", "updated_at"}),
	}).Create(recordM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace otp record")
	}

	return nil
}

// FindByEmail retrieves the live record for an email.
func (repo *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.OtpCode, error) {
	var recordM model.OtpCodeModel
	if err := repo.db.WithContext(ctx).First(&recordM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOtpNotFound
		}

		return nil, errors.Wrap(err, "failed to find otp record")
	}

	return toOtpDomain(&recordM), nil
}

// SaveAttempts persists an updated failed-attempt counter.
func (repo *otpRepository) SaveAttempts(ctx context.Context, email string, attempts int) error {
	err := repo.db.WithContext(ctx).
		Model(&model.OtpCodeModel{}).
		Where("email = ?", email).
		Update("attempts", attempts).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save otp attempts")
	}

	return nil
}

// Delete removes the record for an email. Idempotent.
func (repo *otpRepository) Delete(ctx context.Context, email string) error {
	err := repo.db.WithContext(ctx).Delete(&model.OtpCodeModel{}, "email = ?", email).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete otp record")
	}

	return nil
}

// toOtpDomain converts a GORM OtpCodeModel to a domain OtpCode entity.
func toOtpDomain(data *model.OtpCodeModel) *entity.OtpCode {
	if data == nil {
		return nil
	}

	return &entity.OtpCode{
		Email:     data.Email,
		OtpHash:   data.OtpHash,
		ExpiresAt: data.ExpiresAt,
		Attempts:  data.Attempts,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromOtpDomain converts a domain OtpCode entity to a GORM OtpCodeModel.
func fromOtpDomain(data *entity.OtpCode) *model.OtpCodeModel {
	if data == nil {
		return nil
	}

	return &model.OtpCodeModel{
		Email:     data.Email,
		OtpHash:   data.OtpHash,
		ExpiresAt: data.ExpiresAt,
		Attempts:  data.Attempts,
	}
}
