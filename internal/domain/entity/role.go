// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Role represents the type of account a person registers as.
type Role string

const (
	// RoleArtist indicates an artist account.
	RoleArtist Role = "artist"
	// RoleListener indicates a listener account.
	RoleListener Role = "listener"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleArtist, RoleListener:
		return true
	default:
		return false
	}
}

// Gender represents the self-reported gender of an account holder.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// String returns the string representation of the Gender.
func (g Gender) String() string {
	return string(g)
}

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
