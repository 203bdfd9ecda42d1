// Package models defines server-side data models persisted in the database
// and the decrypted views handed to callers.
package models

import "time"

// User is the persisted identity record. WrappedKey is the user's secret key
// encrypted under the key derived from the master password, Salt and
// Iterations.
type User struct {
	ID         string
	UserName   string
	Salt       []byte
	WrappedKey []byte
	Iterations int
	CreatedAt  time.Time
}

// Identity is the result of a successful authentication: the unwrapped secret
// key together with what a session needs to know about its owner.
type Identity struct {
	UserID    string
	UserName  string
	Salt      []byte
	SecretKey []byte
}
