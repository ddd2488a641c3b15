package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. A user is created in a pending
// state at registration start and becomes able to authenticate only once
// IsEmailVerified flips to true. Until then the email is not exclusively
// claimed: a re-registration overwrites the pending profile wholesale.
type User struct {
	ID              uuid.UUID // The unique identifier for the account.
	FullName        string
	Email           string // Lowercased, trimmed; unique across accounts.
	PhoneNo         string
	Country         string
	State           string
	Gender          Gender
	Age             int
	Categories      []string // Exactly three canonical music categories.
	Role            Role
	PasswordHash    string // Hex PBKDF2 digest. Never exposed outside persistence.
	PasswordSalt    string // Hex random salt, unique per credential.
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
