package entity

import "time"

// OtpCode is the stored state of a one-time passcode challenge. At most one
// live record exists per email; issuing again replaces it wholesale. Only the
// peppered digest of the code is kept, never the code itself.
type OtpCode struct {
	Email     string // The target address, also the record key.
	OtpHash   string // Hex SHA-256 of "<code>:<pepper>".
	ExpiresAt time.Time
	Attempts  int // Failed verification count, bounded by the attempt ceiling.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the record is past its expiry at the given instant.
// An expired record is treated as absent for verification purposes even if it
// still physically exists until cleanup.
func (o *OtpCode) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
