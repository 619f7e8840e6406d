package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlAdapter implements Adapter for the MySQL dialect.
type mysqlAdapter struct{}

func (mysqlAdapter) Name() string { return MySQL }

// Rebind is a no-op: MySQL uses '?' placeholders natively.
func (mysqlAdapter) Rebind(query string) string { return query }

func (mysqlAdapter) InsertIgnore(table string, columns []string, _ string) string {
	var b strings.Builder
	b.WriteString("INSERT IGNORE INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(columns)))
	b.WriteString(")")
	return b.String()
}

// ReturningID is a no-op: the driver exposes LastInsertId directly.
func (mysqlAdapter) ReturningID(insert string) (string, bool) { return insert, false }

func (mysqlAdapter) ClassifyError(err error) ErrorKind {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1048, // column cannot be null
			1062, // duplicate entry
			1216, 1217, // foreign key (legacy numbers)
			1451, 1452, // foreign key
			3819: // check constraint
			return KindConstraint
		case 1054, // unknown column
			1064, // syntax error
			1146, // table does not exist
			1366: // incorrect value for column
			return KindSyntax
		}
		return KindOther
	}
	if isConnErr(err) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnectionLost
	}
	return KindOther
}

func (mysqlAdapter) NormalizeValue(v any) any { return normalizeBytes(v) }

// placeholders returns n comma-separated '?' marks.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// isConnErr covers the driver-independent connection failure modes.
func isConnErr(err error) bool {
	var ne net.Error
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &ne)
}

// normalizeBytes converts []byte column values to string. Text columns
// come back as []byte from the networked drivers, which would make row
// contents differ between dialects.
func normalizeBytes(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
