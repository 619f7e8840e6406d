package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimoenergia/portal-backend/internal/db"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, db.SQLite, cfg.Database.Dialect)
	assert.Equal(t, "portal_nimoenergia.db", cfg.Database.Path)
	assert.Equal(t, db.DefaultConnectTimeout, cfg.Database.ConnectTimeout)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_TYPE", db.MySQL)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "3307")
	t.Setenv("DATABASE_USER", "portal")
	t.Setenv("DATABASE_PASSWORD", "s3cret")
	t.Setenv("DATABASE_NAME", "portal_nimoenergia")
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "10s")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SWEEP_INTERVAL", "15m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, db.MySQL, cfg.Database.Dialect)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "portal", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
}

func TestLoadBareSecondsTimeout(t *testing.T) {
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "45")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Database.ConnectTimeout)
}

func TestLoadRejectsUnknownDialect(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "mongodb")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb")
}

func TestLoadEnvFile(t *testing.T) {
	// Register the restore, then clear so the file entry applies.
	t.Setenv("DATABASE_TYPE", "")
	require.NoError(t, os.Unsetenv("DATABASE_TYPE"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DATABASE_TYPE=postgresql\nDATABASE_URL=postgres://portal@db.internal/portal\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, db.Postgres, cfg.Database.Dialect)
	assert.Equal(t, "postgres://portal@db.internal/portal", cfg.Database.URL)
}

func TestLoadEnvDoesNotOverrideProcess(t *testing.T) {
	t.Setenv("DATABASE_TYPE", db.SQLite)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_TYPE=mysql\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	// Real environment variables win over file entries.
	assert.Equal(t, db.SQLite, cfg.Database.Dialect)
}
