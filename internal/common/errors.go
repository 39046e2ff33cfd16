// Package common defines shared constants and sentinel errors used across
// client and server layers of credkit. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Core generation errors.
	ErrEntropyUnavailable = errors.New("entropy unavailable")
	ErrOracleUnavailable  = errors.New("uniqueness oracle unavailable")
	ErrExhaustedAttempts  = errors.New("exhausted token generation attempts")

	// Argument validation.
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
	ErrInvalidLength     = errors.New("invalid length")
	ErrUnknownKDF        = errors.New("unknown key derivation function")
	ErrInvalidArgument   = errors.New("invalid argument")

	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorUsernameTaken = errors.New("username taken")

	// Auth errors (invalid, malformed or expired access token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
