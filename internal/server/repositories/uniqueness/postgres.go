package uniqueness

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/jackc/pgx/v5"
)

type PostgresOracle struct {
	db dbx.DBTX
}

func NewPostgresOracle(db dbx.DBTX) *PostgresOracle {
	return &PostgresOracle{db: db}
}

func (o *PostgresOracle) Exists(ctx context.Context, table, column, value string) (bool, error) {
	if err := ValidateIdentifier(table, column); err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize())

	var exists bool
	if err := o.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
