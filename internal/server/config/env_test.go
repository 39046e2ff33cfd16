package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("environment variables override config", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}
		t.Setenv("CREDKIT_DATABASE_DRIVER", "sqlite")
		t.Setenv("CREDKIT_DATABASE_DSN", "file:env.db")
		t.Setenv("CREDKIT_ACCESS_TOKEN_VALIDITY_DURATION", "2h")
		t.Setenv("CREDKIT_TOKEN_LENGTH", "12")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "file:env.db", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 12, cfg.TokenLength)
		assert.Equal(t, 32, cfg.TokenMaxAttempts)
	})

	t.Run("dotenv file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CREDKIT_DOTENV_MARKER=1\nCREDKIT_KDF=argon2id\n"), 0o600))
		os.Args = []string{"testbin", "-env", path}
		t.Cleanup(func() {
			os.Unsetenv("CREDKIT_DOTENV_MARKER")
			os.Unsetenv("CREDKIT_KDF")
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "argon2id", cfg.KDF)
		assert.Equal(t, "1", os.Getenv("CREDKIT_DOTENV_MARKER"))
	})

	t.Run("process env wins over dotenv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CREDKIT_API_KEY_LENGTH=64\n"), 0o600))
		os.Args = []string{"testbin", "-env", path}
		t.Setenv("CREDKIT_API_KEY_LENGTH", "40")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, 40, cfg.APIKeyLength)
	})

	t.Run("malformed integer panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}
		t.Setenv("CREDKIT_TOKEN_MAX_ATTEMPTS", "lots")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("malformed duration panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}
		t.Setenv("CREDKIT_ACCESS_TOKEN_VALIDITY_DURATION", "soon")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
