package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/credkit/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "CREDKIT_"

// parseEnv loads the dotenv file named by -env (default ".env") into the
// process environment without overriding variables that are already set,
// then overlays every CREDKIT_* variable onto config. A missing dotenv
// file is ignored; a malformed file or value panics.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlags()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString(&config.EndpointAddrGRPC, "ENDPOINT_ADDR_GRPC")
	lookupString(&config.DatabaseDriver, "DATABASE_DRIVER")
	lookupString(&config.DatabaseDSN, "DATABASE_DSN")
	lookupString(&config.SecretKey, "SECRET_KEY")
	lookupString(&config.KDF, "KDF")

	if v, ok := os.LookupEnv(EnvPrefix + "ACCESS_TOKEN_VALIDITY_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}

	lookupInt(&config.TokenLength, "TOKEN_LENGTH")
	lookupInt(&config.TokenMaxAttempts, "TOKEN_MAX_ATTEMPTS")
	lookupInt(&config.APIKeyLength, "API_KEY_LENGTH")
}

func lookupString(dst *string, name string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}

func lookupInt(dst *int, name string) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}
