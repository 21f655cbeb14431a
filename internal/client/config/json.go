package config

import (
	"encoding/json"
	"os"

	"letterpal/internal/flagx"
	"letterpal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
