// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"frishta/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterStartInput defines the data required to start a registration.
// Age is a pointer so a missing field can be told apart from zero.
type RegisterStartInput struct {
	FullName   string
	Email      string
	Password   string
	Role       string
	PhoneNo    string
	Country    string
	State      string
	Gender     string
	Age        *int
	Categories []string
}

// RegisterVerifyInput defines the data required to confirm an OTP.
type RegisterVerifyInput struct {
	Email string
	Otp   string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
}

// --- Output DTOs ---

// OtpIssuedOutput reports that a code was generated and queued for delivery.
// Otp is only populated when the deployment exposes codes for development.
type OtpIssuedOutput struct {
	Message     string
	EmailQueued bool
	Otp         string
}

// LoginOutput returns the raw session token after a successful login. The
// token is shown to the client exactly once.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the interface for registration and session business
// operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	RegisterStart(ctx context.Context, input *RegisterStartInput) (*OtpIssuedOutput, error)
	RegisterVerify(ctx context.Context, input *RegisterVerifyInput) error
	RegisterResend(ctx context.Context, email string) (*OtpIssuedOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, tokenHash string) error
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
