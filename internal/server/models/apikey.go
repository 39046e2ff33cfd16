package models

// APIKey is a unique random token issued to an account.
type APIKey struct {
	Token     string
	AccountID string
	CreatedAt int64
}
