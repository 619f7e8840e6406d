package db

import (
	"errors"

	"modernc.org/sqlite"
)

// SQLite primary result codes the adapter cares about.
// https://sqlite.org/rescode.html
const (
	sqliteError      = 1  // SQL error or missing database
	sqliteBusy       = 5  // database file is locked
	sqliteLocked     = 6  // a table is locked
	sqliteConstraint = 19 // constraint violation
	sqliteMismatch   = 20 // datatype mismatch
)

// sqliteAdapter implements Adapter for the embedded SQLite dialect.
type sqliteAdapter struct{}

func (sqliteAdapter) Name() string { return SQLite }

// Rebind is a no-op: SQLite uses '?' placeholders natively.
func (sqliteAdapter) Rebind(query string) string { return query }

func (sqliteAdapter) InsertIgnore(table string, columns []string, conflictColumn string) string {
	return onConflictIgnore(table, columns, conflictColumn)
}

// ReturningID is a no-op: the driver exposes LastInsertId directly.
func (sqliteAdapter) ReturningID(insert string) (string, bool) { return insert, false }

func (sqliteAdapter) ClassifyError(err error) ErrorKind {
	var se *sqlite.Error
	if errors.As(err, &se) {
		// Extended result codes carry the primary code in the low byte.
		switch se.Code() & 0xff {
		case sqliteConstraint:
			return KindConstraint
		case sqliteBusy, sqliteLocked:
			return KindConnectionLost
		case sqliteError, sqliteMismatch:
			return KindSyntax
		}
		return KindOther
	}
	if isConnErr(err) {
		return KindConnectionLost
	}
	return KindOther
}

func (sqliteAdapter) NormalizeValue(v any) any { return normalizeBytes(v) }
