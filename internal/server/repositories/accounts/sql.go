package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/server/models"
)

// SQLRepository works over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
// Queries use $N placeholders, which both pgx and SQLite accept.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts account. Driver errors are wrapped, not translated, so
// callers can tell unique violations apart with dbx.UniqueViolationOn.
func (r *SQLRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (id, user_hash, username, salt, password, kdf, role, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.UserHash, account.Username, account.Salt, account.Password,
		account.KDF, account.Role, account.CreatedAt, account.LastLogin)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectAccount = `SELECT id, user_hash, username, salt, password, kdf, role, created_at, last_login FROM accounts`

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE username = $1`, username)
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE id = $1`, id)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.UserHash, &a.Username, &a.Salt, &a.Password, &a.KDF, &a.Role, &a.CreatedAt, &a.LastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, id, password string) error {
	return r.updateOne(ctx, `UPDATE accounts SET password = $1 WHERE id = $2`, password, id)
}

func (r *SQLRepository) TouchLastLogin(ctx context.Context, id string, ts int64) error {
	return r.updateOne(ctx, `UPDATE accounts SET last_login = $1 WHERE id = $2`, ts, id)
}

func (r *SQLRepository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
