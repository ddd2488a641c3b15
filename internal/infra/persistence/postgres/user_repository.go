// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/repository"
	"frishta/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// UpsertPending atomically creates or overwrites the pending identity for an
// email. The ON CONFLICT update is guarded on is_email_verified = false, so a
// verified row can never be clobbered even if the caller's pre-check raced.
func (repo *userRepository) UpsertPending(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.IsEmailVerified = false

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		Where:   clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Table: "users", Name: "is_email_verified"}, Value: false}}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "phone_no", "country", "state", "gender", "age",
			"categories", "role", "password_hash", "password_salt",
			"is_email_verified", "updated_at",
		}),
	}).Create(userM).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMissingFields.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert pending user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// MarkEmailVerified flips the verification flag for the given email and
// returns the updated identity.
func (repo *userRepository) MarkEmailVerified(ctx context.Context, email string) (*entity.User, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("is_email_verified", true)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark email verified")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.FindByEmail(ctx, email)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		PhoneNo:         data.PhoneNo,
		Country:         data.Country,
		State:           data.State,
		Gender:          entity.Gender(data.Gender),
		Age:             data.Age,
		Categories:      []string(data.Categories),
		Role:            entity.Role(data.Role),
		PasswordHash:    data.PasswordHash,
		PasswordSalt:    data.PasswordSalt,
		IsEmailVerified: data.IsEmailVerified,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		PhoneNo:         data.PhoneNo,
		Country:         data.Country,
		State:           data.State,
		Gender:          data.Gender.String(),
		Age:             data.Age,
		Categories:      data.Categories,
		Role:            data.Role.String(),
		PasswordHash:    data.PasswordHash,
		PasswordSalt:    data.PasswordSalt,
		IsEmailVerified: data.IsEmailVerified,
	}
}
