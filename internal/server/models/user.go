// Package models holds the persistent domain records of the service.
package models

import "time"

// User is an identity record. ID is assigned by storage on creation;
// Username and Email are unique across all live records. PasswordHash is
// a bcrypt hash and must never leave the service.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserUpdate describes a partial update: nil fields are left untouched.
// Password carries a raw password that the account service re-hashes
// before storage.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}
