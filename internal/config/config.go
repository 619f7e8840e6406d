// Package config reads the process configuration from the environment,
// once at startup. A .env file is loaded first when present; real
// environment variables win over file entries.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nimoenergia/portal-backend/internal/db"
)

// Config is the full process configuration.
type Config struct {
	Environment   string // "production" or "development"
	Database      db.Config
	SweepInterval time.Duration
}

// Defaults matching the reference deployment.
const (
	defaultSQLitePath    = "portal_nimoenergia.db"
	defaultSweepInterval = time.Hour
)

// Load reads the configuration. envFile may be empty; a missing file is
// not an error, since production deployments configure through real
// environment variables.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	dialect := getenv("DATABASE_TYPE", db.SQLite)
	switch dialect {
	case db.MySQL, db.Postgres, db.SQLite:
	default:
		return nil, fmt.Errorf("config: unsupported DATABASE_TYPE %q", dialect)
	}

	cfg := &Config{
		Environment: getenv("APP_ENV", "production"),
		Database: db.Config{
			Dialect:        dialect,
			Host:           os.Getenv("DATABASE_HOST"),
			Port:           getint("DATABASE_PORT", 0),
			User:           os.Getenv("DATABASE_USER"),
			Password:       os.Getenv("DATABASE_PASSWORD"),
			Name:           os.Getenv("DATABASE_NAME"),
			URL:            os.Getenv("DATABASE_URL"),
			Path:           getenv("DATABASE_PATH", defaultSQLitePath),
			ConnectTimeout: getduration("DATABASE_CONNECT_TIMEOUT", db.DefaultConnectTimeout),
		},
		SweepInterval: getduration("SWEEP_INTERVAL", defaultSweepInterval),
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	// Accept both Go durations ("30s") and bare seconds ("30").
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
