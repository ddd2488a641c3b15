// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"frishta/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpsertPending atomically creates the identity for user.Email or, when a
	// row already exists and is still unverified, overwrites its profile and
	// credential wholesale. A verified row is left untouched. The store's
	// native guarded upsert is used; callers must not emulate this with
	// read-then-write.
	UpsertPending(ctx context.Context, user *entity.User) error

	// MarkEmailVerified flips the verification flag for the given email.
	// Returns ErrUserNotFound when no identity exists for the address.
	MarkEmailVerified(ctx context.Context, email string) (*entity.User, error)
}
