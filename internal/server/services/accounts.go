package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/dbx"
	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/lookup"
	"github.com/dmitrijs2005/credkit/internal/server/auth"
	"github.com/dmitrijs2005/credkit/internal/server/config"
	"github.com/dmitrijs2005/credkit/internal/server/models"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credkit/internal/timex"
	"github.com/google/uuid"
)

const (
	accountsTable  = "accounts"
	userHashColumn = "user_hash"
	apiKeysTable   = "api_keys"
	apiKeyColumn   = "token"
)

// now is a seam for tests.
var now = time.Now

// dummySalt feeds the derivation run for unknown usernames so a failed
// lookup costs as much as a wrong password.
var dummySalt = cryptox.Hash("credkit-unknown-account")

// Profile is the display view of an account.
type Profile struct {
	AccountID string
	Username  string
	UserHash  string
	Role      string
	CreatedAt string
	LastLogin string
	APIKeys   int
}

type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	credentials                 *CredentialService
	deriver                     cryptox.Deriver
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	apiKeyLength                int
	logger                      logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, credentials *CredentialService, cfg *config.Config, logger logging.Logger) (*AccountService, error) {
	deriver, err := cryptox.LookupDeriver(cfg.KDF)
	if err != nil {
		return nil, err
	}
	return &AccountService{
		db:                          db,
		repomanager:                 m,
		credentials:                 credentials,
		deriver:                     deriver,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		apiKeyLength:                cfg.APIKeyLength,
		logger:                      logger.With("module", "accounts"),
	}, nil
}

// Register creates an account with a fresh salt, a credential derived with
// the configured scheme and a unique user hash. A zero role means buyer.
func (s *AccountService) Register(ctx context.Context, username, password string, role lookup.Role) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrInvalidArgument)
	}
	if role == 0 {
		role = lookup.RoleBuyer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %d", common.ErrInvalidArgument, role)
	}

	repo := s.repomanager.Accounts(s.db)

	_, err := repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, common.ErrorUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "username lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	salt, err := s.credentials.GenerateSalt()
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:        uuid.NewString(),
		Username:  username,
		Salt:      salt,
		Password:  s.deriver.Derive(password, salt),
		KDF:       s.deriver.Name(),
		Role:      int(role),
		CreatedAt: now().Unix(),
	}

	_, err = s.credentials.ReserveUniqueToken(ctx, accountsTable, userHashColumn, 0, func(ctx context.Context, token string) error {
		account.UserHash = token
		err := repo.Create(ctx, account)
		if dbx.UniqueViolationOn(err, "username") {
			return common.ErrorUsernameTaken
		}
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			return nil, common.ErrorUsernameTaken
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID, "role", role.String())
	return account, nil
}

// Login checks the credential and returns a signed access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.deriver.Derive(password, dummySalt)
			s.logger.Info(ctx, "login rejected")
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	ok, err := s.credentials.Verify(password, account.Salt, account.Password, account.KDF)
	if err != nil {
		s.logger.Error(ctx, "credential check failed", "account_id", account.ID, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		s.logger.Info(ctx, "login rejected", "account_id", account.ID)
		return "", common.ErrorUnauthorized
	}

	if err := repo.TouchLastLogin(ctx, account.ID, now().Unix()); err != nil {
		s.logger.Error(ctx, "last login update failed", "account_id", account.ID, "error", err)
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating access token: %w", err)
	}

	s.logger.Info(ctx, "login succeeded", "account_id", account.ID)
	return token, nil
}

// ChangePassword re-derives the credential for newPassword. The salt and the
// account's derivation scheme are kept.
func (s *AccountService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", common.ErrInvalidArgument)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		deriver, err := cryptox.LookupDeriver(account.KDF)
		if err != nil {
			return err
		}

		if !cryptox.Equal(deriver.Derive(oldPassword, account.Salt), account.Password) {
			return common.ErrorUnauthorized
		}

		return repo.UpdatePassword(ctx, account.ID, deriver.Derive(newPassword, account.Salt))
	})

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return common.ErrorUnauthorized
	case errors.Is(err, common.ErrUnknownKDF):
		s.logger.Error(ctx, "stored kdf unknown", "account_id", accountID, "error", err)
		return common.ErrorInternal
	case err != nil:
		return s.lookupError(ctx, err)
	}

	s.logger.Info(ctx, "password changed", "account_id", accountID)
	return nil
}

// IssueAPIKey reserves a new unique API key for the account.
func (s *AccountService) IssueAPIKey(ctx context.Context, accountID string) (string, error) {
	if _, err := s.repomanager.Accounts(s.db).GetByID(ctx, accountID); err != nil {
		return "", s.lookupError(ctx, err)
	}

	keys := s.repomanager.APIKeys(s.db)
	createdAt := now().Unix()

	token, err := s.credentials.ReserveUniqueToken(ctx, apiKeysTable, apiKeyColumn, s.apiKeyLength, func(ctx context.Context, token string) error {
		return keys.Create(ctx, &models.APIKey{Token: token, AccountID: accountID, CreatedAt: createdAt})
	})
	if err != nil {
		s.logger.Error(ctx, "api key issue failed", "account_id", accountID, "error", err)
		return "", err
	}

	s.logger.Info(ctx, "api key issued", "account_id", accountID)
	return token, nil
}

func (s *AccountService) Profile(ctx context.Context, accountID string) (*Profile, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		return nil, s.lookupError(ctx, err)
	}

	keys, err := s.repomanager.APIKeys(s.db).ListByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error(ctx, "api key listing failed", "account_id", accountID, "error", err)
		return nil, common.ErrorInternal
	}

	return &Profile{
		AccountID: account.ID,
		Username:  account.Username,
		UserHash:  account.UserHash,
		Role:      lookup.RoleName(account.Role),
		CreatedAt: timex.FormatRelative(account.CreatedAt, now()),
		LastLogin: timex.FormatRelative(account.LastLogin, now()),
		APIKeys:   len(keys),
	}, nil
}

func (s *AccountService) lookupError(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, "account query failed", "error", err)
	return common.ErrorInternal
}
