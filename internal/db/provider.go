package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Config carries the connection settings for the configured dialect.
// Only a subset of the fields applies to each dialect; see the
// DATABASE_* environment keys in internal/config.
type Config struct {
	Dialect  string
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// URL is the single connection-URL form for PostgreSQL. When set it
	// takes precedence over the discrete fields and encryption is enforced.
	URL string

	// Path is the database file for the embedded dialect.
	Path string

	// ConnectTimeout bounds connection acquisition and, on the embedded
	// dialect, the busy-retry window for contended writes.
	ConnectTimeout time.Duration
}

// DefaultConnectTimeout matches the reference configuration.
const DefaultConnectTimeout = 30 * time.Second

// mysqlPoolSize bounds the shared pool for the networked MySQL dialect.
const mysqlPoolSize = 10

// conn is the per-call handle statements run on. Both *sql.Conn (pooled
// dialects) and *sql.DB (embedded dialect, one handle per call) satisfy it.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// ConnSource hands out live connections for the configured dialect.
// The release function must be called on every exit path.
type ConnSource interface {
	Acquire(ctx context.Context) (conn, func() error, error)
	Dialect() string
	Close() error
}

// Provider is the ConnSource for real databases. The two networked
// dialects share one long-lived pool; the embedded dialect opens a fresh
// handle per call so no connection state survives between calls.
type Provider struct {
	cfg  Config
	log  *zap.Logger
	pool *sql.DB // nil for the embedded dialect
}

// NewProvider validates the configuration and, for the networked
// dialects, opens the connection pool. The pool is lazy: reachability is
// checked on first Acquire, not here.
func NewProvider(cfg Config, log *zap.Logger) (*Provider, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	p := &Provider{cfg: cfg, log: log}
	switch cfg.Dialect {
	case MySQL:
		dsn, err := p.mysqlDSN()
		if err != nil {
			return nil, p.connErr(err)
		}
		pool, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, p.connErr(err)
		}
		pool.SetMaxOpenConns(mysqlPoolSize)
		pool.SetMaxIdleConns(mysqlPoolSize / 2)
		pool.SetConnMaxLifetime(5 * time.Minute)
		p.pool = pool
	case Postgres:
		dsn, err := p.postgresDSN()
		if err != nil {
			return nil, p.connErr(err)
		}
		pool, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, p.connErr(err)
		}
		pool.SetMaxOpenConns(mysqlPoolSize)
		pool.SetConnMaxLifetime(5 * time.Minute)
		p.pool = pool
	case SQLite:
		if cfg.Path == "" {
			return nil, p.connErr(fmt.Errorf("DATABASE_PATH is required for the %s dialect", SQLite))
		}
	default:
		return nil, &ConnectionError{Dialect: cfg.Dialect, Err: ErrUnsupportedDialect}
	}
	return p, nil
}

// Dialect returns the configured dialect name.
func (p *Provider) Dialect() string { return p.cfg.Dialect }

// Acquire returns a live connection and its release function. For the
// pooled dialects release returns the connection to the pool; for the
// embedded dialect it closes the handle.
func (p *Provider) Acquire(ctx context.Context) (conn, func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()
	if p.pool != nil {
		c, err := p.pool.Conn(ctx)
		if err != nil {
			return nil, nil, p.connErr(err)
		}
		return c, c.Close, nil
	}
	h, err := sql.Open("sqlite", p.sqliteDSN())
	if err != nil {
		return nil, nil, p.connErr(err)
	}
	if err := h.PingContext(ctx); err != nil {
		_ = h.Close()
		return nil, nil, p.connErr(err)
	}
	return h, h.Close, nil
}

// Close releases the pool. A no-op for the embedded dialect.
func (p *Provider) Close() error {
	if p.pool != nil {
		return p.pool.Close()
	}
	return nil
}

func (p *Provider) connErr(err error) error {
	p.log.Error("database connection failed",
		zap.String("dialect", p.cfg.Dialect),
		zap.Error(err),
	)
	return &ConnectionError{Dialect: p.cfg.Dialect, Err: err}
}

func (p *Provider) mysqlDSN() (string, error) {
	if p.cfg.Host == "" || p.cfg.User == "" || p.cfg.Name == "" {
		return "", fmt.Errorf("DATABASE_HOST, DATABASE_USER and DATABASE_NAME are required for the %s dialect", MySQL)
	}
	port := p.cfg.Port
	if port == 0 {
		port = 3306
	}
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", p.cfg.Host, port)
	mc.User = p.cfg.User
	mc.Passwd = p.cfg.Password
	mc.DBName = p.cfg.Name
	mc.Timeout = p.cfg.ConnectTimeout
	mc.ParseTime = true
	mc.Params = map[string]string{
		"charset":  "utf8mb4",
		"sql_mode": "'STRICT_TRANS_TABLES,NO_ZERO_DATE,NO_ZERO_IN_DATE,ERROR_FOR_DIVISION_BY_ZERO'",
	}
	return mc.FormatDSN(), nil
}

func (p *Provider) postgresDSN() (string, error) {
	if p.cfg.URL != "" {
		// The URL form is used on managed platforms; encryption is required.
		u, err := url.Parse(p.cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", "require")
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	}
	if p.cfg.Host == "" || p.cfg.User == "" || p.cfg.Name == "" {
		return "", fmt.Errorf("DATABASE_URL or DATABASE_HOST/DATABASE_USER/DATABASE_NAME are required for the %s dialect", Postgres)
	}
	port := p.cfg.Port
	if port == 0 {
		port = 5432
	}
	kv := []string{
		"host=" + p.cfg.Host,
		"port=" + strconv.Itoa(port),
		"user=" + p.cfg.User,
		"dbname=" + p.cfg.Name,
		"connect_timeout=" + strconv.Itoa(int(p.cfg.ConnectTimeout.Seconds())),
	}
	if p.cfg.Password != "" {
		kv = append(kv, "password="+p.cfg.Password)
	}
	return strings.Join(kv, " "), nil
}

func (p *Provider) sqliteDSN() string {
	busy := strconv.Itoa(int(p.cfg.ConnectTimeout.Milliseconds()))
	pragmas := "_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(" + busy + ")"
	if p.cfg.Path == ":memory:" {
		return "file::memory:?cache=shared&" + pragmas
	}
	return "file:" + p.cfg.Path + "?" + pragmas
}
