package apikeys

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/server/models"
)

// SQLRepository works over dbx.DBTX with $N placeholders (pgx and SQLite).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts key. A duplicate token surfaces as a wrapped unique
// violation so token reservation can retry.
func (r *SQLRepository) Create(ctx context.Context, key *models.APIKey) error {
	query := `INSERT INTO api_keys (token, account_id, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, key.Token, key.AccountID, key.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) ListByAccount(ctx context.Context, accountID string) ([]models.APIKey, error) {
	query := `SELECT token, account_id, created_at FROM api_keys WHERE account_id = $1 ORDER BY created_at, token`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.Token, &k.AccountID, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return keys, nil
}
