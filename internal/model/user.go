package model

import "time"

// User represents an application user as stored in the `users` table.
// Users act as holders: the user ID becomes the holder identifier carried
// in JWT subjects and written into seat and reservation rows.  Only a
// bcrypt hash of the password is persisted.
//
// Fields:
//  ID           – users.id.
//  Email        – users.email, unique.
//  PasswordHash – users.password_hash (bcrypt).
//  CreatedAt    – users.created_at.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
