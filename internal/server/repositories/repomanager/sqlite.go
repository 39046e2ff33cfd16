package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/apikeys"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/uniqueness"
	"github.com/dmitrijs2005/credkit/internal/tokens"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed implementations for
// single-node deployments.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) APIKeys(db dbx.DBTX) apikeys.Repository {
	return apikeys.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) Oracle(db dbx.DBTX) tokens.Oracle {
	return uniqueness.NewSQLiteOracle(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3")
}
