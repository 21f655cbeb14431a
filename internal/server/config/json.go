package config

import (
	"encoding/json"
	"os"

	"letterpal/internal/flagx"
	"letterpal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration for the token lifetime so JSON can specify it as "168h" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config.
type JsonConfig struct {
	BindAddr                    string         `json:"bind_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RecordingsDir               string         `json:"recordings_dir"`
}

// parseJson overlays Config with values loaded from a JSON file resolved via
// the -c/-config flags. When no file is given, nothing happens. Panics on
// read or unmarshal errors.
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
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.BindAddr != "" {
		config.BindAddr = c.BindAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RecordingsDir != "" {
		config.RecordingsDir = c.RecordingsDir
	}
}
