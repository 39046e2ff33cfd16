package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/credkit/internal/flagx"
	"github.com/dmitrijs2005/credkit/internal/timex"
)

// JsonConfig is the on-disk shape of the daemon configuration. Durations
// use timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDriver              string         `json:"database_driver"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	TokenLength                 int            `json:"token_length"`
	TokenMaxAttempts            int            `json:"token_max_attempts"`
	APIKeyLength                int            `json:"api_key_length"`
	KDF                         string         `json:"kdf"`
}

// parseJson loads the file named by -c/-config into config. Keys absent
// from the file keep their current values. Unreadable files and invalid
// JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err = json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.KDF, c.KDF)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	setInt(&config.TokenLength, c.TokenLength)
	setInt(&config.TokenMaxAttempts, c.TokenMaxAttempts)
	setInt(&config.APIKeyLength, c.APIKeyLength)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
