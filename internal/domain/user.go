package domain

import "time"

// Role is the single authorization role carried by a session token.
type Role string

const (
	RolePlayer    Role = "player"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RolePlayer, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is the credential record for a club member. The gateway only reads
// these rows; registration and administration happen elsewhere.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
