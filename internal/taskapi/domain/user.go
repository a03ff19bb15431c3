package domain

import "time"

// Role is the coarse permission level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a persisted account record. Email is unique case-insensitively;
// the password only ever exists here as a bcrypt hash. Accounts are
// soft-disabled (IsActive=false) rather than deleted by normal flows.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
