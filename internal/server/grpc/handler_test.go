package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/lookup"
	"github.com/dmitrijs2005/credkit/internal/server/models"
	"github.com/dmitrijs2005/credkit/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeCredentials struct {
	salt    string
	saltErr error

	derived   string
	deriveErr error
	lastKDF   string

	token      string
	tokenErr   error
	lastTable  string
	lastColumn string
	lastLength int
}

func (f *fakeCredentials) GenerateSalt() (string, error) { return f.salt, f.saltErr }
func (f *fakeCredentials) Hash(input string) string      { return "h(" + input + ")" }
func (f *fakeCredentials) DeriveWith(kdf, password, salt string) (string, error) {
	f.lastKDF = kdf
	return f.derived, f.deriveErr
}
func (f *fakeCredentials) GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error) {
	f.lastTable, f.lastColumn, f.lastLength = table, column, length
	return f.token, f.tokenErr
}

type fakeAccounts struct {
	regOut   *models.Account
	regErr   error
	lastRole lookup.Role

	loginOut string
	loginErr error

	changeErr     error
	lastAccountID string

	keyOut string
	keyErr error

	profileOut *services.Profile
	profileErr error
}

func (f *fakeAccounts) Register(ctx context.Context, username, password string, role lookup.Role) (*models.Account, error) {
	f.lastRole = role
	return f.regOut, f.regErr
}
func (f *fakeAccounts) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginOut, f.loginErr
}
func (f *fakeAccounts) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	f.lastAccountID = accountID
	return f.changeErr
}
func (f *fakeAccounts) IssueAPIKey(ctx context.Context, accountID string) (string, error) {
	f.lastAccountID = accountID
	return f.keyOut, f.keyErr
}
func (f *fakeAccounts) Profile(ctx context.Context, accountID string) (*services.Profile, error) {
	f.lastAccountID = accountID
	return f.profileOut, f.profileErr
}

func authed(id string) context.Context {
	return context.WithValue(context.Background(), AccountIDKey, id)
}

// ---- tests ----

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrorUsernameTaken, codes.AlreadyExists},
		{common.ErrorAlreadyExists, codes.AlreadyExists},
		{fmt.Errorf("wrap: %w", common.ErrExhaustedAttempts), codes.ResourceExhausted},
		{fmt.Errorf("%w: %w", common.ErrOracleUnavailable, errors.New("conn refused")), codes.Unavailable},
		{common.ErrEntropyUnavailable, codes.Unavailable},
		{common.ErrInvalidIdentifier, codes.InvalidArgument},
		{common.ErrInvalidLength, codes.InvalidArgument},
		{common.ErrUnknownKDF, codes.InvalidArgument},
		{common.ErrInvalidArgument, codes.InvalidArgument},
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("db error: secret detail"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(toStatus(tt.err)))
		})
	}

	assert.NotContains(t, status.Convert(toStatus(errors.New("db error: secret detail"))).Message(), "secret")
	assert.NotContains(t, status.Convert(toStatus(fmt.Errorf("%w: dsn=postgres://x", common.ErrOracleUnavailable))).Message(), "postgres")
}

func TestHandlers_Credentials(t *testing.T) {
	fc := &fakeCredentials{salt: "s", derived: "d", token: "tok"}
	s := NewGRPCServer("", nopLogger{}, fc, &fakeAccounts{}, "k")
	ctx := context.Background()

	salt, err := s.GenerateSalt(ctx, &api.GenerateSaltRequest{})
	require.NoError(t, err)
	assert.Equal(t, "s", salt.Salt)

	h, err := s.Hash(ctx, &api.HashRequest{Input: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "h(x)", h.Digest)

	d, err := s.DerivePassword(ctx, &api.DerivePasswordRequest{Password: []byte("p"), Salt: "s"})
	require.NoError(t, err)
	assert.Equal(t, "d", d.Credential)
	assert.Equal(t, "sha512-iterated", d.KDF)
	assert.Equal(t, "sha512-iterated", fc.lastKDF)

	d, err = s.DerivePassword(ctx, &api.DerivePasswordRequest{Password: []byte("p"), Salt: "s", KDF: "argon2id"})
	require.NoError(t, err)
	assert.Equal(t, "argon2id", d.KDF)

	_, err = s.DerivePassword(ctx, &api.DerivePasswordRequest{Password: []byte("p")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "Hash")

	tok, err := s.GenerateUniqueToken(ctx, &api.GenerateUniqueTokenRequest{Table: "t", Column: "c", Length: 9})
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.Token)
	assert.Equal(t, []any{"t", "c", 9}, []any{fc.lastTable, fc.lastColumn, fc.lastLength})

	fc.saltErr = common.ErrEntropyUnavailable
	_, err = s.GenerateSalt(ctx, &api.GenerateSaltRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	fc.deriveErr = common.ErrUnknownKDF
	_, err = s.DerivePassword(ctx, &api.DerivePasswordRequest{Password: []byte("p"), Salt: "s", KDF: "md5"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	fc.tokenErr = common.ErrExhaustedAttempts
	_, err = s.GenerateUniqueToken(ctx, &api.GenerateUniqueTokenRequest{Table: "t", Column: "c"})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	p, err := s.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", p.Status)
}

func TestHandlers_Accounts(t *testing.T) {
	fa := &fakeAccounts{
		regOut:     &models.Account{ID: "a1", UserHash: "uh"},
		loginOut:   "jwt",
		keyOut:     "key",
		profileOut: &services.Profile{AccountID: "a1", Username: "alice", Role: "Buyer", LastLogin: "Never", APIKeys: 2},
	}
	s := NewGRPCServer("", nopLogger{}, &fakeCredentials{}, fa, "k")

	reg, err := s.Register(context.Background(), &api.RegisterRequest{Username: "alice", Password: []byte("p"), Role: 2})
	require.NoError(t, err)
	assert.Equal(t, &api.RegisterResponse{AccountID: "a1", UserHash: "uh"}, reg)
	assert.Equal(t, lookup.RoleVendor, fa.lastRole)

	login, err := s.Login(context.Background(), &api.LoginRequest{Username: "alice", Password: []byte("p")})
	require.NoError(t, err)
	assert.Equal(t, "jwt", login.AccessToken)

	_, err = s.ChangePassword(authed("a1"), &api.ChangePasswordRequest{OldPassword: []byte("p"), NewPassword: []byte("q")})
	require.NoError(t, err)
	assert.Equal(t, "a1", fa.lastAccountID)

	key, err := s.IssueAPIKey(authed("a2"), &api.IssueAPIKeyRequest{})
	require.NoError(t, err)
	assert.Equal(t, "key", key.Key)
	assert.Equal(t, "a2", fa.lastAccountID)

	prof, err := s.Profile(authed("a1"), &api.ProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "alice", prof.Username)
	assert.Equal(t, 2, prof.APIKeys)

	// account-scoped handlers refuse a context without an account
	_, err = s.Profile(context.Background(), &api.ProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	fa.regErr = common.ErrorUsernameTaken
	_, err = s.Register(context.Background(), &api.RegisterRequest{Username: "alice", Password: []byte("p")})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	fa.loginErr = common.ErrorUnauthorized
	_, err = s.Login(context.Background(), &api.LoginRequest{Username: "alice", Password: []byte("bad")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	fa.changeErr = common.ErrorUnauthorized
	_, err = s.ChangePassword(authed("a1"), &api.ChangePasswordRequest{OldPassword: []byte("bad"), NewPassword: []byte("q")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	fa.keyErr = common.ErrorNotFound
	_, err = s.IssueAPIKey(authed("gone"), &api.IssueAPIKeyRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))

	fa.profileErr = common.ErrorInternal
	_, err = s.Profile(authed("a1"), &api.ProfileRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}
