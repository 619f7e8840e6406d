package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProviderUnsupportedDialect(t *testing.T) {
	_, err := NewProvider(Config{Dialect: "mssql"}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestNewProviderMySQLRequiresFields(t *testing.T) {
	_, err := NewProvider(Config{Dialect: MySQL, Host: "db.internal"}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.Contains(t, err.Error(), "DATABASE_USER")
}

func TestNewProviderSQLiteRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Dialect: SQLite}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
}

func TestMySQLDSN(t *testing.T) {
	p := &Provider{cfg: Config{
		Dialect:        MySQL,
		Host:           "db.internal",
		User:           "portal",
		Password:       "s3cret",
		Name:           "portal_nimoenergia",
		ConnectTimeout: 30 * time.Second,
	}, log: zap.NewNop()}

	dsn, err := p.mysqlDSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "tcp(db.internal:3306)")
	assert.Contains(t, dsn, "/portal_nimoenergia")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "STRICT_TRANS_TABLES")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=30s")
}

func TestPostgresDSNFromURL(t *testing.T) {
	p := &Provider{cfg: Config{
		Dialect: Postgres,
		URL:     "postgres://portal:pw@db.internal:5432/portal",
	}, log: zap.NewNop()}

	dsn, err := p.postgresDSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "sslmode=require")

	// An explicit sslmode in the URL is respected.
	p.cfg.URL = "postgres://portal:pw@localhost/portal?sslmode=disable"
	dsn, err = p.postgresDSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Equal(t, 1, strings.Count(dsn, "sslmode"))
}

func TestPostgresDSNFromFields(t *testing.T) {
	p := &Provider{cfg: Config{
		Dialect:        Postgres,
		Host:           "db.internal",
		User:           "portal",
		Name:           "portal",
		ConnectTimeout: 10 * time.Second,
	}, log: zap.NewNop()}

	dsn, err := p.postgresDSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "connect_timeout=10")
	assert.NotContains(t, dsn, "password")

	p.cfg = Config{Dialect: Postgres}
	_, err = p.postgresDSN()
	require.Error(t, err)
}

func TestSQLiteDSNPragmas(t *testing.T) {
	p := &Provider{cfg: Config{
		Dialect:        SQLite,
		Path:           "portal.db",
		ConnectTimeout: 30 * time.Second,
	}, log: zap.NewNop()}

	dsn := p.sqliteDSN()
	assert.True(t, strings.HasPrefix(dsn, "file:portal.db?"))
	assert.Contains(t, dsn, "_pragma=foreign_keys(1)")
	assert.Contains(t, dsn, "_pragma=journal_mode(WAL)")
	assert.Contains(t, dsn, "_pragma=synchronous(NORMAL)")
	assert.Contains(t, dsn, "_pragma=busy_timeout(30000)")
}

func TestSQLiteAcquireRelease(t *testing.T) {
	p, err := NewProvider(Config{
		Dialect:        SQLite,
		Path:           filepath.Join(t.TempDir(), "acquire.db"),
		ConnectTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	c, release, err := p.Acquire(ctx)
	require.NoError(t, err)
	_, err = c.ExecContext(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)")
	require.NoError(t, err)
	_, err = c.ExecContext(ctx, "INSERT INTO t (v) VALUES ('a')")
	require.NoError(t, err)
	require.NoError(t, release())

	// Each call gets a fresh handle against the same file.
	c, release, err = p.Acquire(ctx)
	require.NoError(t, err)
	var n int
	require.NoError(t, c.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, release())
}
