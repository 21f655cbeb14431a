// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the letterpal CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the learning backend (scheme://host:port).
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local sqlite store.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:20000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "letterpal.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
