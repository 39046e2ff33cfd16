// Package apikeys persists API keys issued to accounts.
package apikeys

import (
	"context"

	"github.com/dmitrijs2005/credkit/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, key *models.APIKey) error
	ListByAccount(ctx context.Context, accountID string) ([]models.APIKey, error)
}
