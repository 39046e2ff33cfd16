package uniqueness

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/dbx"
)

type SQLiteOracle struct {
	db dbx.DBTX
}

func NewSQLiteOracle(db dbx.DBTX) *SQLiteOracle {
	return &SQLiteOracle{db: db}
}

func (o *SQLiteOracle) Exists(ctx context.Context, table, column, value string) (bool, error) {
	if err := ValidateIdentifier(table, column); err != nil {
		return false, err
	}

	// identifiers are validated, so plain double quotes are safe
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM "%s" WHERE "%s" = ?)`, table, column)

	var exists bool
	if err := o.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
