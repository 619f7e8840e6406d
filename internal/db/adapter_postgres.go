package db

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// postgresAdapter implements Adapter for the PostgreSQL dialect.
type postgresAdapter struct{}

func (postgresAdapter) Name() string { return Postgres }

// Rebind rewrites canonical '?' placeholders into PostgreSQL's $1..$n
// form. Marks inside single-quoted literals are left alone.
func (postgresAdapter) Rebind(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}
	var (
		b      strings.Builder
		n      int
		quoted bool
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (postgresAdapter) InsertIgnore(table string, columns []string, conflictColumn string) string {
	return onConflictIgnore(table, columns, conflictColumn)
}

// ReturningID appends a RETURNING clause: lib/pq does not support
// LastInsertId, so the insert must be run as a query.
func (postgresAdapter) ReturningID(insert string) (string, bool) {
	return insert + " RETURNING id", true
}

func (postgresAdapter) ClassifyError(err error) ErrorKind {
	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code.Class() {
		case "23": // integrity constraint violation
			return KindConstraint
		case "08": // connection exception
			return KindConnectionLost
		case "22", "42": // data exception, syntax error or access rule
			return KindSyntax
		}
		return KindOther
	}
	if isConnErr(err) {
		return KindConnectionLost
	}
	return KindOther
}

func (postgresAdapter) NormalizeValue(v any) any { return normalizeBytes(v) }

// onConflictIgnore builds the standard "ON CONFLICT DO NOTHING" insert
// shared by the PostgreSQL and SQLite adapters.
func onConflictIgnore(table string, columns []string, conflictColumn string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(columns)))
	b.WriteString(") ON CONFLICT (")
	b.WriteString(conflictColumn)
	b.WriteString(") DO NOTHING")
	return b.String()
}
