package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for the access layer.
var (
	// ErrUnsupportedDialect is returned when DATABASE_TYPE names a backend
	// the layer does not support.
	ErrUnsupportedDialect = errors.New("db: unsupported dialect")

	// ErrNotFound is returned when a query that expects a row finds none.
	ErrNotFound = errors.New("db: row not found")

	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("db: transaction already committed or rolled back")
)

// ConnectionError reports an unreachable or misconfigured backend.
type ConnectionError struct {
	Dialect string
	Err     error
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("db: connecting to %s: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err is a ConnectionError.
func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// QueryError wraps a failed statement with the dialect, the operation kind
// and the classified native error. Statement parameters are deliberately
// not recorded: they may contain credentials or personal data.
type QueryError struct {
	Dialect string
	Op      string // "read", "write" or "tx"
	Kind    ErrorKind
	Err     error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("db: %s %s failed (%s): %v", e.Dialect, e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *QueryError) Unwrap() error { return e.Err }

// IsQueryError reports whether err is a QueryError.
func IsQueryError(err error) bool {
	var e *QueryError
	return errors.As(err, &e)
}

// IsConstraint reports whether err is a QueryError caused by a unique,
// foreign-key or not-null violation.
func IsConstraint(err error) bool {
	var e *QueryError
	return errors.As(err, &e) && e.Kind == KindConstraint
}

// IsConnectionLost reports whether err is a QueryError caused by a lost
// or contended connection. Such failures are safe to retry.
func IsConnectionLost(err error) bool {
	var e *QueryError
	return errors.As(err, &e) && e.Kind == KindConnectionLost
}
