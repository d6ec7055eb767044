package config

import (
	"os"
	"strings"
)

// applyLocalDefaults fills in the docker-compose development defaults
// for anything the environment left blank.
func applyLocalDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("MINE_STORE_PG_DSN"))
	}
	if cfg.Document.AccessKey == "" {
		cfg.Document.AccessKey = "minesight"
	}
	if cfg.Document.SecretKey == "" {
		cfg.Document.SecretKey = "minesight123"
	}
	cfg.Document.UseSSL = false
}
