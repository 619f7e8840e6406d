// Package db implements the dialect-abstracted data access layer of the
// portal backend. It knows how to open connections, translate statement
// placeholders, normalize result rows and classify driver errors for the
// three supported backends: MySQL, PostgreSQL and SQLite.
package db

// Dialect names accepted by the DATABASE_TYPE configuration key.
const (
	// MySQL is the networked dialect used on AWS RDS / JawsDB style setups.
	MySQL = "mysql"
	// Postgres is the networked dialect used on Heroku style setups.
	Postgres = "postgresql"
	// SQLite is the embedded, file-backed dialect used for local development.
	SQLite = "sqlite"
)

// ErrorKind classifies a failed statement so callers can decide
// whether the operation is retryable.
type ErrorKind int

const (
	// KindOther is any failure not covered by the kinds below.
	KindOther ErrorKind = iota
	// KindConstraint is a unique, foreign-key or not-null violation.
	KindConstraint
	// KindConnectionLost is a dropped, refused or timed-out connection,
	// including short busy windows on the embedded dialect.
	KindConnectionLost
	// KindSyntax is a malformed statement or a type mismatch.
	KindSyntax
)

// String returns the kind name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindConstraint:
		return "constraint"
	case KindConnectionLost:
		return "connection-lost"
	case KindSyntax:
		return "syntax-or-type"
	default:
		return "other"
	}
}

// Adapter holds the per-dialect knowledge the executor stays agnostic of:
// placeholder style, insert-or-ignore idiom, insert-id retrieval and
// native error classification. One implementation exists per dialect and
// is selected once at startup, never branched on per call.
type Adapter interface {
	// Name returns the dialect constant this adapter serves.
	Name() string

	// Rebind rewrites a statement written with canonical '?' placeholders
	// into the adapter's own placeholder style. Quoted literals are left
	// untouched.
	Rebind(query string) string

	// InsertIgnore builds an INSERT for the given table and columns that
	// does nothing when the unique key on conflictColumn already exists.
	// The returned statement uses canonical '?' placeholders.
	InsertIgnore(table string, columns []string, conflictColumn string) string

	// ReturningID rewrites an INSERT so the generated id can be read back,
	// and reports whether the rewritten form must be run as a query.
	// Dialects that expose LastInsertId directly return the statement
	// unchanged with ok=false.
	ReturningID(insert string) (stmt string, ok bool)

	// ClassifyError maps a driver-native error to an ErrorKind.
	ClassifyError(err error) ErrorKind

	// NormalizeValue converts a scanned driver value into the portable
	// representation every dialect agrees on (e.g. []byte becomes string).
	NormalizeValue(v any) any
}

// AdapterFor returns the adapter for the named dialect.
func AdapterFor(dialect string) (Adapter, error) {
	switch dialect {
	case MySQL:
		return mysqlAdapter{}, nil
	case Postgres:
		return postgresAdapter{}, nil
	case SQLite:
		return sqliteAdapter{}, nil
	default:
		return nil, &ConnectionError{Dialect: dialect, Err: ErrUnsupportedDialect}
	}
}
