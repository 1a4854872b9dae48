package domain

import (
	"strings"
	"time"
)

// Role describes what a user is allowed to do.
type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// AuthProvider identifies where a user's credentials live.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderGithub AuthProvider = "github"
)

// User represents a registered account. PasswordHash is set only for
// local-provider users; OAuth users carry an empty hash.
type User struct {
	UserID                 string
	Username               string
	Email                  string
	PasswordHash           string
	FirstName              string
	LastName               string
	Bio                    string
	Avatar                 string
	Role                   Role
	AuthProvider           AuthProvider
	IsEmailVerified        bool
	EmailVerificationToken *string
	PasswordResetToken     *string
	PasswordResetExpires   *time.Time
	RefreshTokenHash       string
	RefreshTokenExpiry     *time.Time
	IsActive               bool
	LastLoginAt            *time.Time
	Timestamps
}

// FullName joins first and last name, trimming when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CanModerate reports whether the user may act on other users' content.
func (u *User) CanModerate() bool {
	return u.Role == RoleAdmin
}
