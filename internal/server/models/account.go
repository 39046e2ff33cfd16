// Package models defines server-side data models persisted in the database.
package models

// Account is a registered user. Password holds the derived credential, never
// the raw password. Salt is fixed at creation; KDF names the deriver that
// produced Password. Timestamps are unix seconds, zero meaning never.
type Account struct {
	ID        string
	UserHash  string
	Username  string
	Salt      string
	Password  string
	KDF       string
	Role      int
	CreatedAt int64
	LastLogin int64
}
