package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = filepath.Join(t.TempDir(), "credkit.db")
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := sqliteConfig(t)
	c.KDF = "md5"

	_, err := NewApp(context.Background(), c, logging.Discard())
	assert.Error(t, err)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := sqliteConfig(t)
	c.DatabaseDSN = filepath.Join(t.TempDir(), "missing", "dir", "credkit.db")

	_, err := NewApp(context.Background(), c, logging.Discard())
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), sqliteConfig(t), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}

	// Run closes the database on the way out
	assert.Error(t, app.db.Ping())
}

func TestApp_RunReturnsListenError(t *testing.T) {
	c := sqliteConfig(t)
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}

func TestNewApp_GeneratesSecretKeyWhenEmpty(t *testing.T) {
	c := sqliteConfig(t)
	require.Empty(t, c.SecretKey)

	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })

	assert.Len(t, c.SecretKey, 2*ephemeralKeyBytes)
	assert.Regexp(t, "^[0-9a-f]+$", c.SecretKey)

	other := sqliteConfig(t)
	app2, err := NewApp(context.Background(), other, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app2.db.Close() })
	assert.NotEqual(t, c.SecretKey, other.SecretKey)
}

func TestNewApp_KeepsConfiguredSecretKey(t *testing.T) {
	c := sqliteConfig(t)
	c.SecretKey = "configured"

	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })

	assert.Equal(t, "configured", c.SecretKey)
}

func TestNewLogger(t *testing.T) {
	l := NewLogger()
	require.NotNil(t, l)
	assert.IsType(t, &logging.SlogLogger{}, l)
}
