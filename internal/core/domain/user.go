package domain

import (
	"errors"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")

// OfferRef is a lightweight reference to an offer a user is related to.
type OfferRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// User models an account. Applied and Participates are derived views over
// the offers' membership sets and are loaded on demand.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email,omitempty"`
	About        string    `json:"about,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Applied      []OfferRef `json:"applied,omitempty"`
	Participates []OfferRef `json:"participates,omitempty"`
}

// CommitmentCount is the user's combined applied+participating total,
// measured against GlobalCommitmentCap.
func (u *User) CommitmentCount() int {
	return len(u.Applied) + len(u.Participates)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Actor is the authenticated identity an operation runs as, as supplied by
// the transport layer's auth middleware.
type Actor struct {
	ID    int64
	Roles []Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
