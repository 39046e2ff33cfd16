package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/client/client"
	"github.com/dmitrijs2005/credkit/internal/client/config"
	"github.com/dmitrijs2005/credkit/internal/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token string

	pingErr  error
	tokenErr error
	loginErr error

	gotTable, gotColumn string
	gotLength           int
	gotUsername         string
	gotPassword         string
	gotRole             int
	gotOld, gotNew      string
	closed              bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { f.closed = true; return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) SetAccessToken(token string)    { f.token = token }

func (f *fakeClient) GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error) {
	f.gotTable, f.gotColumn, f.gotLength = table, column, length
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "abcd1234", nil
}

func (f *fakeClient) Register(ctx context.Context, username string, password []byte, role int) (*api.RegisterResponse, error) {
	f.gotUsername, f.gotPassword, f.gotRole = username, string(password), role
	return &api.RegisterResponse{AccountID: "acc-1", UserHash: "uh-1"}, nil
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	f.gotUsername, f.gotPassword = username, string(password)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "jwt-token", nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	f.gotOld, f.gotNew = string(oldPassword), string(newPassword)
	return nil
}

func (f *fakeClient) IssueAPIKey(ctx context.Context) (string, error) {
	return "key-1", nil
}

func (f *fakeClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	return &api.ProfileResponse{
		AccountID: "acc-1",
		Username:  "alice",
		UserHash:  "uh-1",
		Role:      "Buyer",
		CreatedAt: "just now",
		LastLogin: "never",
		APIKeys:   2,
	}, nil
}

func newTestApp(fc *fakeClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{RequestTimeout: time.Second},
		client: fc,
		src:    randx.Default,
		reader: rdr(input),
		out:    out,
	}, out
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	i := 0
	getPassword = func(w io.Writer, prompt string) ([]byte, error) {
		if i >= len(pws) {
			return nil, errors.New("no more passwords")
		}
		pw := pws[i]
		i++
		return []byte(pw), nil
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{"empty", nil, "", nil},
		{"plain", []string{"salt"}, "salt", []string{}},
		{"global value flag", []string{"-a", "host:1", "ping"}, "ping", []string{}},
		{"global eq flag", []string{"-a=host:1", "token", "-table", "t"}, "token", []string{"-table", "t"}},
		{"config flag", []string{"-c", "x.json", "-t", "5", "hash", "abc"}, "hash", []string{"abc"}},
		{"only flags", []string{"-a", "host:1"}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, rest := SplitCommand(tt.args, config.GlobalValueFlags)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRun_Help(t *testing.T) {
	a, out := newTestApp(&fakeClient{}, "")
	require.NoError(t, a.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: credkit")
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newTestApp(&fakeClient{}, "")
	err := a.Run(context.Background(), []string{"frobnicate"})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestClose(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(fc, "")
	require.NoError(t, a.Close())
	assert.True(t, fc.closed)
}

func TestWithTimeout_NoConfig(t *testing.T) {
	a := &App{}
	ctx, cancel := a.withTimeout(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}

func TestRun_Version(t *testing.T) {
	a, out := newTestApp(&fakeClient{}, "")
	require.NoError(t, a.Run(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "Build version: ")
}
