package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created at registration and are
// immutable afterwards. Only the bcrypt hash of the password is
// ever persisted; the plaintext never leaves the auth service.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username chosen at registration.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Username     string    `json:"username"`   // users.username
	PasswordHash string    `json:"-"`          // users.password_hash, never serialized
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
}
