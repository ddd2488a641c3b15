package model

import "time"

// OtpCodeModel is the GORM model for the otp_codes table. Email is the
// primary key: the unique constraint is what makes issuance an atomic
// replace rather than a read-then-write.
type OtpCodeModel struct {
	Email     string    `gorm:"primaryKey"`
	OtpHash   string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (OtpCodeModel) TableName() string {
	return "otp_codes"
}
