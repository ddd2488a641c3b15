package repository

import (
	"context"
	"errors"

	"frishta/internal/domain/entity"
)

// ErrOtpNotFound is returned when no OTP record exists for an email.
var ErrOtpNotFound = errors.New("otp record not found")

// OtpRepository persists one-time-passcode state, keyed by email.
// At most one record per email exists at any time.
type OtpRepository interface {
	// Replace atomically writes the record for record.Email, overwriting any
	// previous one (last issuance wins).
	Replace(ctx context.Context, record *entity.OtpCode) error

	// FindByEmail retrieves the live record for an email, or ErrOtpNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.OtpCode, error)

	// SaveAttempts persists an updated failed-attempt counter.
	SaveAttempts(ctx context.Context, email string, attempts int) error

	// Delete removes the record for an email. Deleting an absent record is
	// not an error.
	Delete(ctx context.Context, email string) error
}
