package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/credkit/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-driver string database driver, "pgx" or "sqlite"
//	-d string     database DSN
//	-s string     JWT HMAC secret key
//	-t int        access token validity, minutes
//	-l int        default unique token length
//	-m int        maximum generation attempts per token
//	-k int        API key length
//	-kdf string   key derivation scheme for new credentials
//
// os.Args is filtered with flagx.FilterArgs first, so -c and -env are left
// to their own parsers.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-driver", "-d", "-s", "-t", "-l", "-m", "-k", "-kdf"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.TokenLength, "l", config.TokenLength, "default unique token length")
	fs.IntVar(&config.TokenMaxAttempts, "m", config.TokenMaxAttempts, "max attempts per unique token")
	fs.IntVar(&config.APIKeyLength, "k", config.APIKeyLength, "api key length")
	fs.StringVar(&config.KDF, "kdf", config.KDF, "key derivation function (sha512-iterated|argon2id)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
