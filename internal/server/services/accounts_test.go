package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/lookup"
	"github.com/dmitrijs2005/credkit/internal/randx"
	"github.com/dmitrijs2005/credkit/internal/server/auth"
	"github.com/dmitrijs2005/credkit/internal/server/config"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credkit/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func openSQLite(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	rm, err := repomanager.New(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	return db, rm
}

func newAccountService(t *testing.T, kdf string) (*AccountService, *sql.DB) {
	t.Helper()

	db, rm := openSQLite(t)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.KDF = kdf

	gen := tokens.NewGenerator(rm.Oracle(db), randx.Default, logging.Discard(), tokens.WithMaxAttempts(cfg.TokenMaxAttempts))
	creds := NewCredentialService(gen, randx.Default, cfg.TokenLength, logging.Discard())

	s, err := NewAccountService(db, rm, creds, cfg, logging.Discard())
	require.NoError(t, err)
	return s, db
}

func freezeNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

// --- tests ---

func TestNewAccountService_UnknownKDF(t *testing.T) {
	db, rm := openSQLite(t)
	cfg := &config.Config{KDF: "md5"}

	_, err := NewAccountService(db, rm, nil, cfg, logging.Discard())
	assert.ErrorIs(t, err, common.ErrUnknownKDF)
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	for _, kdf := range []string{cryptox.KDFIterated, cryptox.KDFArgon2id} {
		t.Run(kdf, func(t *testing.T) {
			s, _ := newAccountService(t, kdf)
			ctx := context.Background()

			acc, err := s.Register(ctx, "  alice ", "hunter2", 0)
			require.NoError(t, err)

			assert.Equal(t, "alice", acc.Username)
			assert.Equal(t, int(lookup.RoleBuyer), acc.Role)
			assert.Equal(t, kdf, acc.KDF)
			assert.Len(t, acc.Salt, cryptox.DigestHexLen)
			assert.Len(t, acc.UserHash, tokens.DefaultLength)
			assert.NotEqual(t, "hunter2", acc.Password)

			token, err := s.Login(ctx, "alice", "hunter2")
			require.NoError(t, err)

			id, err := auth.GetAccountIDFromToken(token, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, acc.ID, id)

			_, err = s.Login(ctx, "alice", "wrong")
			assert.ErrorIs(t, err, common.ErrorUnauthorized)

			_, err = s.Login(ctx, "bob", "hunter2")
			assert.ErrorIs(t, err, common.ErrorUnauthorized)
		})
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	s, _ := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()

	_, err := s.Register(ctx, " ", "pw", lookup.RoleBuyer)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = s.Register(ctx, "carol", "", lookup.RoleBuyer)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = s.Register(ctx, "carol", "pw", lookup.Role(9))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	acc, err := s.Register(ctx, "carol", "pw", lookup.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, int(lookup.RoleVendor), acc.Role)

	_, err = s.Register(ctx, "carol", "pw2", lookup.RoleBuyer)
	assert.ErrorIs(t, err, common.ErrorUsernameTaken)
}

func TestAccountService_Register_UniqueUserHashes(t *testing.T) {
	s, _ := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		acc, err := s.Register(ctx, fmt.Sprintf("user%02d", i), "pw", 0)
		require.NoError(t, err)
		assert.False(t, seen[acc.UserHash], "duplicate user hash %s", acc.UserHash)
		seen[acc.UserHash] = true
	}
}

func TestAccountService_Login_UpdatesLastLogin(t *testing.T) {
	s, _ := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()

	registered := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	freezeNow(t, registered)

	acc, err := s.Register(ctx, "dave", "pw", lookup.RoleAdmin)
	require.NoError(t, err)

	p, err := s.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Never", p.LastLogin)
	assert.Equal(t, "less than a minute ago", p.CreatedAt)
	assert.Equal(t, "Admin", p.Role)

	now = func() time.Time { return registered.Add(30 * time.Minute) }
	_, err = s.Login(ctx, "dave", "pw")
	require.NoError(t, err)

	now = func() time.Time { return registered.Add(3 * time.Hour) }
	p, err = s.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", p.Username)
	assert.Equal(t, acc.UserHash, p.UserHash)
	assert.Equal(t, "about 3 hours ago", p.LastLogin)
	assert.Equal(t, "about 3 hours ago", p.CreatedAt)
	assert.Equal(t, 0, p.APIKeys)
}

func TestAccountService_ChangePassword(t *testing.T) {
	s, _ := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()

	acc, err := s.Register(ctx, "erin", "old", 0)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChangePassword(ctx, acc.ID, "wrong", "new"), common.ErrorUnauthorized)
	assert.ErrorIs(t, s.ChangePassword(ctx, acc.ID, "old", ""), common.ErrInvalidArgument)
	assert.ErrorIs(t, s.ChangePassword(ctx, "missing", "old", "new"), common.ErrorNotFound)

	require.NoError(t, s.ChangePassword(ctx, acc.ID, "old", "new"))

	_, err = s.Login(ctx, "erin", "old")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "erin", "new")
	assert.NoError(t, err)
}

func TestAccountService_IssueAPIKey(t *testing.T) {
	s, _ := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()

	acc, err := s.Register(ctx, "frank", "pw", 0)
	require.NoError(t, err)

	k1, err := s.IssueAPIKey(ctx, acc.ID)
	require.NoError(t, err)
	k2, err := s.IssueAPIKey(ctx, acc.ID)
	require.NoError(t, err)

	assert.Len(t, k1, 32)
	assert.NotEqual(t, k1, k2)

	p, err := s.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.APIKeys)

	_, err = s.IssueAPIKey(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAccountService_ClosedDatabase(t *testing.T) {
	s, db := newAccountService(t, cryptox.KDFIterated)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := s.Register(ctx, "gina", "pw", 0)
	assert.ErrorIs(t, err, common.ErrorInternal)

	_, err = s.Login(ctx, "gina", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)

	_, err = s.Profile(ctx, "id")
	assert.ErrorIs(t, err, common.ErrorInternal)
}
