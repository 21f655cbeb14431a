package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading a
// .env file first when one exists in the working directory. A missing .env is
// not an error.
//
// Recognized variables:
//
//	LETTERPAL_BIND_ADDR
//	LETTERPAL_DATABASE_DSN
//	LETTERPAL_SECRET_KEY
//	LETTERPAL_TOKEN_VALIDITY_MINUTES
//	LETTERPAL_RECORDINGS_DIR
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("LETTERPAL_BIND_ADDR"); v != "" {
		cfg.BindAddr = v
	}
	if v := os.Getenv("LETTERPAL_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("LETTERPAL_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("LETTERPAL_TOKEN_VALIDITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("LETTERPAL_RECORDINGS_DIR"); v != "" {
		cfg.RecordingsDir = v
	}
}
