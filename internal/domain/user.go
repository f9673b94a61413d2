package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates account roles.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// User represents a users row. Balance is an integer amount in the
// platform's base unit, mutated only through the ledger engine.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Role          Role      `json:"role"`
	Balance       int64     `json:"balance"`
	Banned        bool      `json:"banned"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
