package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/randx"
)

const (
	DefaultLength      = 16
	DefaultMaxAttempts = 32
)

// Oracle answers whether value already exists in table.column. It must
// reflect every committed row.
type Oracle interface {
	Exists(ctx context.Context, table, column, value string) (bool, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(ctx context.Context, table, column, value string) (bool, error)

func (f OracleFunc) Exists(ctx context.Context, table, column, value string) (bool, error) {
	return f(ctx, table, column, value)
}

// InsertFunc persists a generated token. It should fail with a unique
// violation (see dbx.IsUniqueViolation) or common.ErrorAlreadyExists when
// the token was taken concurrently.
type InsertFunc func(ctx context.Context, token string) error

// Generator holds no per-call state and is safe for concurrent use.
type Generator struct {
	oracle      Oracle
	src         randx.Source
	maxAttempts int
	logger      logging.Logger
}

type Option func(*Generator)

// WithMaxAttempts bounds the retry loop. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewGenerator(oracle Oracle, src randx.Source, logger logging.Logger, opts ...Option) *Generator {
	g := &Generator{
		oracle:      oracle,
		src:         src,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.With("module", "tokens"),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// MaxAttempts returns the configured retry bound.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Candidate draws one token of the given length without consulting the
// oracle.
func (g *Generator) Candidate(length int) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}

	salt, err := cryptox.GenerateSalt(g.src)
	if err != nil {
		return "", err
	}
	return cryptox.Hash(salt)[:length], nil
}

// Generate returns a token of the given length that did not exist in
// table.column when the oracle was asked.
func (g *Generator) Generate(ctx context.Context, table, column string, length int) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		tok, err := g.next(ctx, table, column, length)
		if err != nil {
			return "", err
		}
		if tok != "" {
			return tok, nil
		}
		g.logger.Debug(ctx, "token collision", "table", table, "column", column, "attempt", attempt)
	}

	g.logger.Warn(ctx, "token generation exhausted", "table", table, "column", column, "attempts", g.maxAttempts)
	return "", fmt.Errorf("%w: %s.%s after %d attempts", common.ErrExhaustedAttempts, table, column, g.maxAttempts)
}

// Reserve generates a token and persists it with insert. When the insert
// loses a race and hits a unique violation, a new token is generated. Oracle
// collisions and insert conflicts share the same attempt bound.
func (g *Generator) Reserve(ctx context.Context, table, column string, length int, insert InsertFunc) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		tok, err := g.next(ctx, table, column, length)
		if err != nil {
			return "", err
		}
		if tok == "" {
			g.logger.Debug(ctx, "token collision", "table", table, "column", column, "attempt", attempt)
			continue
		}

		err = insert(ctx, tok)
		if err == nil {
			return tok, nil
		}
		if !dbx.IsUniqueViolation(err) && !errors.Is(err, common.ErrorAlreadyExists) {
			return "", err
		}
		g.logger.Debug(ctx, "token taken on insert", "table", table, "column", column, "attempt", attempt)
	}

	g.logger.Warn(ctx, "token reservation exhausted", "table", table, "column", column, "attempts", g.maxAttempts)
	return "", fmt.Errorf("%w: %s.%s after %d attempts", common.ErrExhaustedAttempts, table, column, g.maxAttempts)
}

// next performs one attempt. An empty token with a nil error means the
// candidate collided.
func (g *Generator) next(ctx context.Context, table, column string, length int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tok, err := g.Candidate(length)
	if err != nil {
		return "", err
	}

	exists, err := g.oracle.Exists(ctx, table, column, tok)
	if err != nil {
		if errors.Is(err, common.ErrInvalidIdentifier) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		g.logger.Error(ctx, "uniqueness oracle failed", "table", table, "column", column, "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrOracleUnavailable, err)
	}
	if exists {
		return "", nil
	}
	return tok, nil
}

func checkLength(length int) error {
	if length < 1 || length > cryptox.DigestHexLen {
		return fmt.Errorf("%w: token length %d not in [1, %d]", common.ErrInvalidLength, length, cryptox.DigestHexLen)
	}
	return nil
}
