package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel is the GORM model for the sessions table. TokenHash carries a
// global unique constraint; the raw token never reaches this layer.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	UserAgent string    `gorm:"default:''"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName overrides the default table name.
func (SessionModel) TableName() string {
	return "sessions"
}
