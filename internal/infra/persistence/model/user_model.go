// Package model contains the GORM persistence models. They mirror the domain
// entities but carry storage concerns (table names, constraints, defaults).
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName        string                      `gorm:"not null"`
	Email           string                      `gorm:"uniqueIndex;not null"`
	PhoneNo         string                      `gorm:"not null"`
	Country         string                      `gorm:"not null"`
	State           string                      `gorm:"not null"`
	Gender          string                      `gorm:"not null"`
	Age             int                         `gorm:"not null"`
	Categories      datatypes.JSONSlice[string] `gorm:"not null"`
	Role            string                      `gorm:"not null"`
	PasswordHash    string                      `gorm:"not null"`
	PasswordSalt    string                      `gorm:"not null"`
	IsEmailVerified bool                        `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name.
func (UserModel) TableName() string {
	return "users"
}
