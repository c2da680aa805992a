package models

// Role is the access level assigned to a user account.
type Role string

const (
	// RoleUser is the default access level. Users can view dashboards but
	// cannot mutate domain records.
	RoleUser Role = "user"

	// RoleAdmin grants access to the record-editing screens and to
	// account-removal operations.
	RoleAdmin Role = "admin"
)

// ParseRole normalises a stored or user-supplied role string.
// Anything other than "admin" — including an empty string from a legacy
// record that predates the role column — falls back to RoleUser.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is used only at the persistence layer.
	ID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the bcrypt blob derived from the user's password.
	// This value MUST be a hash, never plaintext.
	PasswordHash string `json:"-"`

	// Role is the access level of the account.
	Role Role `json:"role"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
