package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/uniqueness"
	"github.com/dmitrijs2005/credkit/internal/tokens"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed implementations.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

func (m *PostgresRepositoryManager) APIKeys(db dbx.DBTX) apikeys.Repository {
	return apikeys.NewSQLRepository(db)
}

func (m *PostgresRepositoryManager) Oracle(db dbx.DBTX) tokens.Oracle {
	return uniqueness.NewPostgresOracle(db)
}

// RunMigrations applies the embedded migrations with goose's pgx dialect.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "pgx")
}
