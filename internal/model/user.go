package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash must never leave the server; handlers respond with
// PublicUser instead.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (3–50 chars).
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – optional display name.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name (may be empty)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the client-facing view of a user.  It omits the password
// hash and carries JSON tags matching the API contract.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Public converts a stored user into its client-facing view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
