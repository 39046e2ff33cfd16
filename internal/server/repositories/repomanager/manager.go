// Package repomanager vends repository and oracle implementations for a
// database dialect and runs the embedded goose migrations for it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/server/migrations"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/credkit/internal/tokens"
	"github.com/pressly/goose/v3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	APIKeys(db dbx.DBTX) apikeys.Repository
	Oracle(db dbx.DBTX) tokens.Oracle
}

// New returns the manager for a database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
