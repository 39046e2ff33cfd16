// Package accounts persists accounts and their derived credentials.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/credkit/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdatePassword(ctx context.Context, id, password string) error
	TouchLastLogin(ctx context.Context, id string, ts int64) error
}
