// Package services holds the daemon's business logic: the credential
// primitives exposed over RPC and the account flows built on them.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/randx"
	"github.com/dmitrijs2005/credkit/internal/tokens"
)

// CredentialService is the entry point for salts, derived credentials and
// unique tokens. It is safe for concurrent use.
type CredentialService struct {
	src         randx.Source
	generator   *tokens.Generator
	tokenLength int
	logger      logging.Logger
}

func NewCredentialService(generator *tokens.Generator, src randx.Source, tokenLength int, logger logging.Logger) *CredentialService {
	if tokenLength == 0 {
		tokenLength = tokens.DefaultLength
	}
	return &CredentialService{
		src:         src,
		generator:   generator,
		tokenLength: tokenLength,
		logger:      logger.With("module", "credentials"),
	}
}

// GenerateSalt returns a fresh 128-character salt.
func (s *CredentialService) GenerateSalt() (string, error) {
	return cryptox.GenerateSalt(s.src)
}

// Hash applies the iterated hash with no salt.
func (s *CredentialService) Hash(input string) string {
	return cryptox.Hash(input)
}

// DerivePassword derives the storable credential for password and salt with
// the iterated scheme.
func (s *CredentialService) DerivePassword(password, salt string) string {
	return cryptox.Password(password, salt)
}

// DeriveWith derives with the named scheme.
func (s *CredentialService) DeriveWith(kdf, password, salt string) (string, error) {
	d, err := cryptox.LookupDeriver(kdf)
	if err != nil {
		return "", err
	}
	return d.Derive(password, salt), nil
}

// Verify re-derives password with salt and the scheme the credential was
// stored with, and compares in constant time.
func (s *CredentialService) Verify(password, salt, stored, kdf string) (bool, error) {
	derived, err := s.DeriveWith(kdf, password, salt)
	if err != nil {
		return false, err
	}
	return cryptox.Equal(derived, stored), nil
}

// GenerateUniqueToken returns a token absent from table.column. A zero
// length selects the configured default.
func (s *CredentialService) GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error) {
	if length == 0 {
		length = s.tokenLength
	}
	tok, err := s.generator.Generate(ctx, table, column, length)
	if err != nil {
		return "", fmt.Errorf("generate token for %s.%s: %w", table, column, err)
	}
	return tok, nil
}

// ReserveUniqueToken generates a token and persists it with insert,
// regenerating when insert reports a unique violation.
func (s *CredentialService) ReserveUniqueToken(ctx context.Context, table, column string, length int, insert tokens.InsertFunc) (string, error) {
	if length == 0 {
		length = s.tokenLength
	}
	tok, err := s.generator.Reserve(ctx, table, column, length, insert)
	if err != nil {
		return "", fmt.Errorf("reserve token for %s.%s: %w", table, column, err)
	}
	return tok, nil
}
