package client

import (
	"context"

	"github.com/dmitrijs2005/credkit/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SetAccessToken(token string)
	GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error)
	Register(ctx context.Context, username string, password []byte, role int) (*api.RegisterResponse, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	IssueAPIKey(ctx context.Context) (string, error)
	Profile(ctx context.Context) (*api.ProfileResponse, error)
}
