package models

import "time"

// Role is the closed set of authorization roles a user may hold.
// Any value outside the declared constants is rejected at the store
// boundary and by the token verifier.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "USER"

	// RoleAdmin grants access to every todo regardless of ownership and to
	// the admin-only routes.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the declared role constants.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, lowercase-normalized login identifier.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never plaintext, never serialized.
	PasswordHash string `json:"-"`

	// FirstName and LastName are display attributes, non-sensitive.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Role determines the authorization level of the account.
	// Immutable via the public API: no role-change endpoint exists.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
